// Package payload normalizes and validates raw tool arguments into the
// typed request structures. A request with any invalid series fails as
// a whole; nothing is rendered from partially valid payloads.
package payload

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// toNumber accepts the numeric shapes JSON decoding can produce and
// nothing else. Strings, nulls and booleans in numeric slots are
// rejected by the caller when ok is false.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func optString(args map[string]any, key, def string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", core.NewFieldError(key, "must be a string")
	}
	return s, nil
}

func optBool(args map[string]any, key string, def bool) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, core.NewFieldError(key, "must be a boolean")
	}
	return b, nil
}

func optInt(args map[string]any, key string, def int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	f, ok := toNumber(raw)
	if !ok || f != math.Trunc(f) {
		return 0, core.NewFieldError(key, "must be an integer")
	}
	return int(f), nil
}

func optFloat(args map[string]any, key string, def float64) (float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	f, ok := toNumber(raw)
	if !ok {
		return 0, core.NewFieldError(key, "must be a number")
	}
	return f, nil
}

// themeRef reads the theme selection: "theme_preset" names a preset,
// "theme" holds an inline override object. The terminal tools
// additionally allow "theme" to be a plain preset name.
func themeRef(args map[string]any) (core.ThemeRef, error) {
	ref := core.ThemeRef{}

	preset, err := optString(args, "theme_preset", "")
	if err != nil {
		return ref, err
	}
	ref.Preset = preset

	raw, ok := args["theme"]
	if !ok || raw == nil {
		return ref, nil
	}
	switch v := raw.(type) {
	case string:
		if ref.Preset == "" {
			ref.Preset = v
		}
	case map[string]any:
		ref.Override = v
	default:
		return ref, core.NewFieldError("theme", "must be a preset name or a theme object")
	}
	return ref, nil
}

// parseSeriesList converts the raw "data" array into DataSeries,
// enforcing the series invariants: y numeric and non-empty, and
// len(x) == len(y) whenever x is supplied.
func parseSeriesList(field string, raw any) ([]core.DataSeries, error) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, core.NewFieldError(field, "must be a non-empty array of data series")
	}

	out := make([]core.DataSeries, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, core.NewFieldError(fmt.Sprintf("%s[%d]", field, i), "must be an object")
		}
		series, err := parseSeries(fmt.Sprintf("%s[%d]", field, i), i, entry)
		if err != nil {
			return nil, err
		}
		out = append(out, series)
	}
	return out, nil
}

func parseSeries(field string, index int, entry map[string]any) (core.DataSeries, error) {
	var series core.DataSeries

	name, err := optString(entry, "name", "")
	if err != nil {
		return series, core.NewFieldError(field+".name", "must be a string")
	}
	if name == "" {
		name = fmt.Sprintf("Series %d", index+1)
	}
	series.Name = name

	rawY, ok := entry["y"]
	if !ok {
		return series, core.NewFieldError(field+".y", "is required")
	}
	yItems, ok := rawY.([]any)
	if !ok || len(yItems) == 0 {
		return series, core.NewFieldError(field+".y", "must be a non-empty array of numbers")
	}
	series.Y = make([]float64, len(yItems))
	for j, v := range yItems {
		f, ok := toNumber(v)
		if !ok {
			return series, core.NewFieldError(fmt.Sprintf("%s.y[%d]", field, j), "must be a number")
		}
		series.Y[j] = f
	}

	rawX, present := entry["x"]
	if !present || rawX == nil {
		series.X = sequencePositions(len(series.Y))
		series.NumericX = true
		return series, nil
	}

	xItems, ok := rawX.([]any)
	if !ok {
		return series, core.NewFieldError(field+".x", "must be an array")
	}
	if len(xItems) != len(yItems) {
		return series, core.NewFieldError(field,
			"x and y must have the same length (x=%d, y=%d)", len(xItems), len(yItems))
	}

	numeric := true
	for _, v := range xItems {
		if _, ok := toNumber(v); !ok {
			numeric = false
			break
		}
	}

	if numeric {
		series.NumericX = true
		series.X = make([]float64, len(xItems))
		for j, v := range xItems {
			series.X[j], _ = toNumber(v)
		}
		return series, nil
	}

	// Categorical axis: every x value becomes a label, positions are
	// assigned by the renderer from category order.
	series.Labels = make([]string, len(xItems))
	for j, v := range xItems {
		switch label := v.(type) {
		case string:
			series.Labels[j] = label
		case float64, float32, int, int32, int64:
			f, _ := toNumber(v)
			series.Labels[j] = trimFloat(f)
		default:
			return series, core.NewFieldError(fmt.Sprintf("%s.x[%d]", field, j),
				"must be a string or a number")
		}
	}
	series.X = sequencePositions(len(series.Y))
	return series, nil
}

func sequencePositions(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// parsePieSeriesList converts the raw "data" array into PieDataSeries:
// labels and values paired by index, values non-negative, labels unique.
func parsePieSeriesList(field string, raw any) ([]core.PieDataSeries, error) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, core.NewFieldError(field, "must be a non-empty array of pie series")
	}

	out := make([]core.PieDataSeries, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, core.NewFieldError(fmt.Sprintf("%s[%d]", field, i), "must be an object")
		}
		prefix := fmt.Sprintf("%s[%d]", field, i)

		var series core.PieDataSeries
		name, err := optString(entry, "name", "")
		if err != nil {
			return nil, core.NewFieldError(prefix+".name", "must be a string")
		}
		series.Name = name

		rawLabels, ok := entry["labels"].([]any)
		if !ok || len(rawLabels) == 0 {
			return nil, core.NewFieldError(prefix+".labels", "must be a non-empty array of strings")
		}
		series.Labels = make([]string, len(rawLabels))
		for j, v := range rawLabels {
			s, ok := v.(string)
			if !ok {
				return nil, core.NewFieldError(fmt.Sprintf("%s.labels[%d]", prefix, j), "must be a string")
			}
			series.Labels[j] = s
		}
		if dupes := lo.FindDuplicates(series.Labels); len(dupes) > 0 {
			return nil, core.NewFieldError(prefix+".labels", "duplicate label %q", dupes[0])
		}

		rawValues, ok := entry["values"].([]any)
		if !ok {
			return nil, core.NewFieldError(prefix+".values", "must be an array of numbers")
		}
		if len(rawValues) != len(rawLabels) {
			return nil, core.NewFieldError(prefix,
				"labels and values must have the same length (labels=%d, values=%d)",
				len(rawLabels), len(rawValues))
		}
		series.Values = make([]float64, len(rawValues))
		for j, v := range rawValues {
			f, ok := toNumber(v)
			if !ok {
				return nil, core.NewFieldError(fmt.Sprintf("%s.values[%d]", prefix, j), "must be a number")
			}
			if f < 0 {
				return nil, core.NewFieldError(fmt.Sprintf("%s.values[%d]", prefix, j), "must be non-negative")
			}
			series.Values[j] = f
		}

		out = append(out, series)
	}
	return out, nil
}

// parseExportOptions reads the shared export knobs. Any path-like
// destination field in the request is rejected outright: the save
// directory is operator configuration, never caller input.
func parseExportOptions(args map[string]any, defaultName string) (core.ExportOptions, error) {
	opts := core.ExportOptions{}

	if _, ok := args["output_path"]; ok {
		return opts, core.NewFieldError("output_path",
			"callers cannot choose a save location; the server's OUTPUT_DIR is the only save root")
	}

	format, err := optString(args, "format", string(core.FormatBase64))
	if err != nil {
		return opts, err
	}
	switch core.ImageFormat(format) {
	case core.FormatPNG, core.FormatSVG, core.FormatBase64:
		opts.Format = core.ImageFormat(format)
	default:
		return opts, core.NewFieldError("format", "must be one of: png, svg, base64")
	}

	filename, err := optString(args, "filename", defaultName)
	if err != nil {
		return opts, err
	}
	opts.Filename = filename

	save, err := optBool(args, "save_to_disk", false)
	if err != nil {
		return opts, err
	}
	opts.SaveToDisk = save

	return opts, nil
}
