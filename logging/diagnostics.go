package logging

import (
	"fmt"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"io"
	stdlog "log"
	"os"
	"strings"
)

const timeFormat = "2006.01.02 15:04:05"

// levels maps configured logging levels onto zerolog levels. The exception
// level logs like error but also records the caller of every event.
var levels = map[string]zerolog.Level{
	"info":      zerolog.InfoLevel,
	"error":     zerolog.ErrorLevel,
	"exception": zerolog.ErrorLevel,
}

// ParseLevel returns the zerolog level for a configured logging level.
func ParseLevel(level string) (zerolog.Level, error) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return zerolog.NoLevel, fmt.Errorf("expected logging level one of {info, error, exception}; got %s", level)
	}
	return l, nil
}

// NewConsoleWriter formats events as lines of the form
// "[2017.06.30 09:15:02] I message key=value".
func NewConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: timeFormat,
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%v]", i)
		},
		FormatLevel: func(i interface{}) string {
			level, ok := i.(string)
			if !ok || level == "" {
				return "?"
			}
			return strings.ToUpper(level[:1])
		},
	}
}

// Init configures the global zerolog logger used for diagnostics and routes
// the standard library logger through it. Diagnostics are appended to file if
// it is set and written to standard output otherwise. The returned function
// closes the log file and must be called before exit.
func Init(level string, file string) (func() error, error) {
	zerologLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", file, err)
		}
		out = f
		closeFn = f.Close
	}

	zerolog.TimeFieldFormat = timeFormat
	zerolog.SetGlobalLevel(zerologLevel)

	logCtx := zerolog.New(NewConsoleWriter(out)).With().Timestamp()
	if strings.EqualFold(strings.TrimSpace(level), "exception") {
		logCtx = logCtx.Caller()
	}
	zlog.Logger = logCtx.Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(zlog.Logger)

	return closeFn, nil
}
