package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogpessoal/internal/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger sends GORM's log output through the application logger.
type gormLogger struct {
	log   *logging.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger(log *logging.Logger) logger.Interface {
	return &gormLogger{log: log, level: logger.Warn, slow: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	l.emit(logger.Info, "info", msg, args)
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	l.emit(logger.Warn, "warn", msg, args)
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	l.emit(logger.Error, "error", msg, args)
}

func (l *gormLogger) emit(min logger.LogLevel, level, msg string, args []any) {
	if l.level < min {
		return
	}
	l.log.Log(map[string]any{
		"component": "gorm",
		"level":     level,
		"msg":       fmt.Sprintf(msg, args...),
	})
}

// Trace logs failed queries at error level and slow ones at warn. A missing
// record is not a failure.
func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var level, event string
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		level, event = "error", "db_query_failed"
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		level, event = "warn", "db_query_slow"
	case l.level >= logger.Info:
		level, event = "info", "db_query"
	default:
		return
	}

	stmt, rows := fc()
	entry := map[string]any{
		"component":   "gorm",
		"event":       event,
		"level":       level,
		"sql":         stmt,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	l.log.Log(entry)
}
