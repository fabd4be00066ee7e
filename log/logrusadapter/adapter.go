// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"github.com/pgstruct/pgstruct"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	l logrus.FieldLogger
}

func NewLogger(l logrus.FieldLogger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(level pgstruct.LogLevel, msg string, data map[string]interface{}) {
	var logger logrus.FieldLogger
	if data != nil {
		logger = l.l.WithFields(data)
	} else {
		logger = l.l
	}

	switch level {
	case pgstruct.LogLevelTrace:
		logger.WithField("PGSTRUCT_LOG_LEVEL", level).Debug(msg)
	case pgstruct.LogLevelDebug:
		logger.Debug(msg)
	case pgstruct.LogLevelInfo:
		logger.Info(msg)
	case pgstruct.LogLevelWarn:
		logger.Warn(msg)
	case pgstruct.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_PGSTRUCT_LOG_LEVEL", level).Error(msg)
	}
}
