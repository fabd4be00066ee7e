// Package zapadapter provides a logger that writes to a go.uber.org/zap.Logger.
package zapadapter

import (
	"github.com/pgstruct/pgstruct"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

func (pl *Logger) Log(level pgstruct.LogLevel, msg string, data map[string]interface{}) {
	fields := make([]zapcore.Field, len(data))
	i := 0
	for k, v := range data {
		fields[i] = zap.Any(k, v)
		i++
	}

	switch level {
	case pgstruct.LogLevelTrace:
		pl.logger.Debug(msg, append(fields, zap.Stringer("PGSTRUCT_LOG_LEVEL", level))...)
	case pgstruct.LogLevelDebug:
		pl.logger.Debug(msg, fields...)
	case pgstruct.LogLevelInfo:
		pl.logger.Info(msg, fields...)
	case pgstruct.LogLevelWarn:
		pl.logger.Warn(msg, fields...)
	case pgstruct.LogLevelError:
		pl.logger.Error(msg, fields...)
	default:
		pl.logger.Error(msg, append(fields, zap.Stringer("INVALID_PGSTRUCT_LOG_LEVEL", level))...)
	}
}
