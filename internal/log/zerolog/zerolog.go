// SPDX-License-Identifier: Apache-2.0

package zerolog

import (
	"io"
	stdlog "log"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	loglib "github.com/shalean/bookingimport/pkg/log"
	zerologlib "github.com/shalean/bookingimport/pkg/log/zerolog"
)

type Config struct {
	LogLevel string
	// Out defaults to stderr, keeping stdout free for progress output.
	Out io.Writer
}

// init sets some zerolog global defaults we want to keep throughout the project.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "timestamp"
	zerolog.ErrorFieldName = "error.message"

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return path.Base(file) + ":" + strconv.Itoa(line)
	}
}

// SetGlobalLogger sets the log output in the stdlib log package and the
// zerolog global loggers.
func SetGlobalLogger(logger *zerolog.Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)

	log.Logger = *logger
	zerolog.DefaultContextLogger = logger
}

func NewStdLogger(l *zerolog.Logger) loglib.Logger {
	return zerologlib.NewLogger(l)
}

// NewLogger creates a console logger at the configured level. An unknown
// level falls back to info.
func NewLogger(config *Config) *zerolog.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || config.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	out := config.Out
	if out == nil {
		out = os.Stderr
	}

	logger := zerolog.New(zerolog.NewConsoleWriter(
		withTimeFormat(time.RFC3339),
		withOut(out),
	)).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)

	return &logger
}

func withTimeFormat(format string) func(*zerolog.ConsoleWriter) {
	return func(w *zerolog.ConsoleWriter) {
		w.TimeFormat = format
	}
}

func withOut(out io.Writer) func(*zerolog.ConsoleWriter) {
	return func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.NoColor = out != os.Stderr
	}
}
