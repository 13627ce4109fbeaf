// Package logging writes structured log entries as JSON, one object per line.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger emits entries through zerolog. Safe for concurrent use.
type Logger struct {
	zl  zerolog.Logger
	loc *time.Location
}

// New returns a Logger writing to w with timestamps rendered in loc (UTC when nil).
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{zl: zerolog.New(zerolog.SyncWriter(w)), loc: loc}
}

// Stdout returns a Logger writing to os.Stdout.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Log writes data as a single line. It adds "ts" and takes the level from
// data["level"]; without one, an "error" status means error level and
// anything else info.
func (l *Logger) Log(data map[string]any) {
	if l == nil {
		return
	}
	level := zerolog.InfoLevel
	if s, ok := data["level"].(string); ok {
		if lv, err := zerolog.ParseLevel(s); err == nil && lv != zerolog.NoLevel {
			level = lv
		}
	} else if data["status"] == "error" {
		level = zerolog.ErrorLevel
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		if k != "level" && k != "ts" {
			fields[k] = v
		}
	}
	l.zl.WithLevel(level).
		Str("ts", time.Now().In(l.loc).Format(time.RFC3339Nano)).
		Fields(fields).
		Send()
}

// Info logs msg at info level with optional extra fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(withMsg("info", msg, fields))
}

// Error logs msg at error level, attaching err under "error".
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	entry := withMsg("error", msg, fields)
	if err != nil {
		entry["error"] = err.Error()
	}
	l.Log(entry)
}

func withMsg(level, msg string, fields map[string]any) map[string]any {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	return entry
}
