// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"github.com/pgstruct/pgstruct"
	"github.com/rs/zerolog"
)

type Logger struct {
	logger zerolog.Logger
}

// NewLogger accepts a zerolog.Logger as input and returns a new custom
// pgstruct logging facade as output.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("module", "pgstruct").Logger(),
	}
}

func (pl *Logger) Log(level pgstruct.LogLevel, msg string, data map[string]interface{}) {
	var zlevel zerolog.Level
	switch level {
	case pgstruct.LogLevelNone:
		zlevel = zerolog.NoLevel
	case pgstruct.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case pgstruct.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case pgstruct.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	log := pl.logger.With().Fields(data).Logger()
	log.WithLevel(zlevel).Msg(msg)
}
