package core

import (
	"errors"
	"fmt"
)

var (
	ErrThemeNotFound        = errors.New("theme preset not found")
	ErrUnsupportedChartType = errors.New("unsupported chart type")
	ErrUnsupportedFormat    = errors.New("unsupported output format")
	ErrRenderFailed         = errors.New("rendering failed")
)

// FieldError is a validation failure naming the offending field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewFieldError builds a FieldError with a formatted reason.
func NewFieldError(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
