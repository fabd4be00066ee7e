// Package kitlogadapter provides a logger that writes to a github.com/go-kit/log.Logger.
package kitlogadapter

import (
	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/pgstruct/pgstruct"
)

type Logger struct {
	l log.Logger
}

func NewLogger(l log.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(level pgstruct.LogLevel, msg string, data map[string]interface{}) {
	logger := l.l
	for k, v := range data {
		logger = log.With(logger, k, v)
	}

	switch level {
	case pgstruct.LogLevelTrace:
		logger.Log("PGSTRUCT_LOG_LEVEL", level, "msg", msg)
	case pgstruct.LogLevelDebug:
		kitlevel.Debug(logger).Log("msg", msg)
	case pgstruct.LogLevelInfo:
		kitlevel.Info(logger).Log("msg", msg)
	case pgstruct.LogLevelWarn:
		kitlevel.Warn(logger).Log("msg", msg)
	case pgstruct.LogLevelError:
		kitlevel.Error(logger).Log("msg", msg)
	default:
		logger.Log("INVALID_PGSTRUCT_LOG_LEVEL", level, "error", msg)
	}
}
