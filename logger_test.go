package pgstruct_test

import (
	"testing"

	"github.com/pgstruct/pgstruct"
	"github.com/pgstruct/pgstruct/log/testingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	lvl  pgstruct.LogLevel
	msg  string
	data map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Log(level pgstruct.LogLevel, msg string, data map[string]interface{}) {
	l.entries = append(l.entries, logEntry{lvl: level, msg: msg, data: data})
}

func TestDecoderTraceLogging(t *testing.T) {
	logger := &recordingLogger{}
	dec := pgstruct.NewDecoder(pgstruct.DecoderConfig{Logger: logger, LogLevel: pgstruct.LogLevelTrace})

	row := singleColumnRow(t, pgstruct.Int4OID, int4Value(1))
	var v int32
	require.NoError(t, dec.Decode(row, &v))

	require.NotEmpty(t, logger.entries)
	assert.Equal(t, pgstruct.LogLevelTrace, logger.entries[0].lvl)
	assert.Equal(t, "decoding row", logger.entries[0].msg)
	assert.Equal(t, 1, logger.entries[0].data["columns"])
}

func TestDecoderErrorLogging(t *testing.T) {
	logger := &recordingLogger{}
	dec := pgstruct.NewDecoder(pgstruct.DecoderConfig{Logger: logger, LogLevel: pgstruct.LogLevelError})

	row := singleColumnRow(t, pgstruct.TextOID, textValue("x"))
	var v int32
	require.Error(t, dec.Decode(row, &v))

	require.Len(t, logger.entries, 1)
	assert.Equal(t, pgstruct.LogLevelError, logger.entries[0].lvl)
	assert.Equal(t, "row decode failed", logger.entries[0].msg)
}

func TestDecoderLogLevelFiltersTrace(t *testing.T) {
	logger := &recordingLogger{}
	dec := pgstruct.NewDecoder(pgstruct.DecoderConfig{Logger: logger, LogLevel: pgstruct.LogLevelError})

	row := singleColumnRow(t, pgstruct.Int4OID, int4Value(1))
	var v int32
	require.NoError(t, dec.Decode(row, &v))
	assert.Empty(t, logger.entries)
}

func TestDecoderDefaultsLogLevel(t *testing.T) {
	logger := &recordingLogger{}
	dec := pgstruct.NewDecoder(pgstruct.DecoderConfig{Logger: logger})

	// Debug is the default level, so trace events stay silent but errors
	// are reported.
	row := singleColumnRow(t, pgstruct.TextOID, textValue("x"))
	var v int32
	require.Error(t, dec.Decode(row, &v))
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "row decode failed", logger.entries[0].msg)
}

func TestDecoderWithTestingAdapter(t *testing.T) {
	dec := pgstruct.NewDecoder(pgstruct.DecoderConfig{
		Logger:   testingadapter.NewLogger(t),
		LogLevel: pgstruct.LogLevelTrace,
	})

	row := singleColumnRow(t, pgstruct.Int4OID, int4Value(1))
	var v int32
	require.NoError(t, dec.Decode(row, &v))
	assert.Equal(t, int32(1), v)
}

func TestLogLevelFromString(t *testing.T) {
	lvl, err := pgstruct.LogLevelFromString("trace")
	require.NoError(t, err)
	assert.Equal(t, pgstruct.LogLevelTrace, lvl)

	lvl, err = pgstruct.LogLevelFromString("none")
	require.NoError(t, err)
	assert.Equal(t, pgstruct.LogLevelNone, lvl)

	_, err = pgstruct.LogLevelFromString("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "trace", pgstruct.LogLevelTrace.String())
	assert.Equal(t, "none", pgstruct.LogLevelNone.String())
	assert.Equal(t, "invalid level 42", pgstruct.LogLevel(42).String())
}
