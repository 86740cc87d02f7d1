// Package gorm routes gorm's SQL logging through the global zerolog logger.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoPowerDNS-Admin/appsettings/internal/logger"
)

// Logger implements gorm's logger.Interface.
type Logger struct {
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

// New creates a gorm logger from the log config.
func New(cfg logger.Log) *Logger {
	return &Logger{
		level:     ParseLevel(cfg.SQLLevel()),
		slowQuery: cfg.SlowQuery(),
	}
}

// ParseLevel maps silent, error, warn and info to gorm log levels.
// Anything else falls back to warn.
func ParseLevel(level string) gormlogger.LogLevel {
	switch level {
	case logger.SQLLevelSilent:
		return gormlogger.Silent
	case logger.SQLLevelError:
		return gormlogger.Error
	case logger.SQLLevelInfo:
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode returns a copy of the logger with another level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

// Info logs at info level.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		log.Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Error logs at error level.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		log.Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace logs a finished statement: failures at error, slow ones at warn and
// everything else at debug when the level is info.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		event = log.Error().Err(err)
	case elapsed > l.slowQuery && l.level >= gormlogger.Warn:
		event = log.Warn().Dur("threshold", l.slowQuery)
	case l.level >= gormlogger.Info:
		event = log.Debug()
	default:
		return
	}

	sql, rows := fc()
	event.
		Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("sql statement")
}
