// SPDX-License-Identifier: Apache-2.0

package zerolog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	loglib "github.com/shalean/bookingimport/pkg/log"
)

// Logger adapts a zerolog logger to the loglib.Logger interface.
type Logger struct {
	zerologger *zerolog.Logger
	fields     loglib.Fields
}

// raw legacy fields can be arbitrarily long (price snapshots), keep log lines
// readable
const maxFieldLen = 512

func NewLogger(zl *zerolog.Logger) *Logger {
	return &Logger{
		zerologger: zl,
	}
}

func (l *Logger) Trace(msg string, fields ...loglib.Fields) {
	l.emit(l.zerologger.Trace(), msg, fields)
}

func (l *Logger) Debug(msg string, fields ...loglib.Fields) {
	l.emit(l.zerologger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...loglib.Fields) {
	l.emit(l.zerologger.Info(), msg, fields)
}

func (l *Logger) Warn(err error, msg string, fields ...loglib.Fields) {
	l.emit(l.zerologger.Warn().Err(err), msg, fields)
}

func (l *Logger) Error(err error, msg string, fields ...loglib.Fields) {
	l.emit(l.zerologger.Error().Err(err), msg, fields)
}

func (l *Logger) WithFields(fields loglib.Fields) loglib.Logger {
	return &Logger{
		zerologger: l.zerologger,
		fields:     loglib.MergeFields(l.fields, fields),
	}
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields []loglib.Fields) {
	// disabled levels return a nil event
	if event == nil {
		return
	}
	withFields(event, append(fields, l.fields)...).Msg(msg)
}

func withFields(event *zerolog.Event, fieldMaps ...loglib.Fields) *zerolog.Event {
	for _, m := range fieldMaps {
		for key, value := range m {
			switch v := value.(type) {
			case string:
				event = event.Str(key, truncate(v))
			case int:
				event = event.Int(key, v)
			case int64:
				event = event.Int64(key, v)
			case time.Duration:
				event = event.Dur(key, v)
			case []string:
				event = event.Strs(key, v)
			case fmt.Stringer:
				event = event.Str(key, truncate(v.String()))
			default:
				event = event.Any(key, v)
			}
		}
	}
	return event
}

func truncate(s string) string {
	if len(s) > maxFieldLen {
		return s[:maxFieldLen] + "..."
	}
	return s
}
