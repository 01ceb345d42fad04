package zerolog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"

	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
)

// Adapter implements logger.Logger on top of zerolog. All output goes
// to stderr: stdout belongs to the MCP stdio transport.
type Adapter struct {
	log zerolog.Logger
}

// New builds a zerolog-backed logger. With jsonFormat the raw JSON event
// stream is emitted; otherwise a console writer with goterm-colored
// levels is used, optionally monochrome.
func New(level string, colored, jsonFormat bool) (*Adapter, error) {
	logMode, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zl zerolog.Logger
	if jsonFormat {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{
			Out:             os.Stderr,
			NoColor:         !colored,
			TimeFormat:      "15:04:05",
			FormatLevel:     formatLevel,
			FormatTimestamp: formatTimestamp,
		}
		zl = zerolog.New(output).With().Timestamp().Logger()
	}

	zl = zl.Level(logMode)
	return &Adapter{log: zl}, nil
}

func formatLevel(i interface{}) string {
	levelStr, ok := i.(string)
	if !ok {
		return term.Whitef("[UNK]")
	}

	switch levelStr {
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	default:
		return term.Whitef("[%s]", strings.ToUpper(levelStr))
	}
}

func formatTimestamp(i interface{}) string {
	strTime, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.ParseInLocation(time.RFC3339, strTime, time.Local); err == nil {
		strTime = ts.In(time.Local).Format("15:04:05")
	}

	return term.Cyanf("[%s]", strTime)
}

// WithField implements logger.Logger.
func (a *Adapter) WithField(key string, value any) logger.Logger {
	return &Adapter{log: a.log.With().Interface(key, value).Logger()}
}

// WithError implements logger.Logger.
func (a *Adapter) WithError(err error) logger.Logger {
	return &Adapter{log: a.log.With().Err(err).Logger()}
}

func (a *Adapter) Debug(args ...any) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Info(args ...any)  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Warn(args ...any)  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Error(args ...any) { a.log.Error().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Fatal(args ...any) { a.log.Fatal().Msg(fmt.Sprint(args...)) }

func (a *Adapter) Debugf(format string, args ...any) { a.log.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.log.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.log.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.log.Error().Msgf(format, args...) }
func (a *Adapter) Fatalf(format string, args ...any) { a.log.Fatal().Msgf(format, args...) }

// SetLevel implements logger.Logger.
func (a *Adapter) SetLevel(level logger.Level) {
	a.log = a.log.Level(toZerologLevel(level))
}

// GetLevel implements logger.Logger.
func (a *Adapter) GetLevel() logger.Level {
	return toLevel(a.log.GetLevel())
}

func toZerologLevel(level logger.Level) zerolog.Level {
	switch level {
	case logger.Disabled:
		return zerolog.Disabled
	case logger.DebugLevel:
		return zerolog.DebugLevel
	case logger.InfoLevel:
		return zerolog.InfoLevel
	case logger.WarnLevel:
		return zerolog.WarnLevel
	case logger.ErrorLevel:
		return zerolog.ErrorLevel
	case logger.FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func toLevel(level zerolog.Level) logger.Level {
	switch level {
	case zerolog.Disabled:
		return logger.Disabled
	case zerolog.DebugLevel:
		return logger.DebugLevel
	case zerolog.InfoLevel:
		return logger.InfoLevel
	case zerolog.WarnLevel:
		return logger.WarnLevel
	case zerolog.ErrorLevel:
		return logger.ErrorLevel
	case zerolog.FatalLevel:
		return logger.FatalLevel
	default:
		return logger.InfoLevel
	}
}
