package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a query is logged at warn level.
const slowQuery = 200 * time.Millisecond

// logger sends gorm's output to zerolog.
type logger struct {
	Logger zerolog.Logger
	level  gorm_logger.LogLevel
}

func newLogger(l zerolog.Logger) *logger {
	return &logger{Logger: l, level: gorm_logger.Info}
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	event := l.Logger.With().
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Logger()

	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm_logger.ErrRecordNotFound):
		event.Error().Err(err).Msg("[GORM] query error")
	case elapsed > slowQuery:
		event.Warn().Msg("[GORM] slow query")
	default:
		event.Debug().Msg("[GORM] query")
	}
}
