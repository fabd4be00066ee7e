package log15adapter_test

import (
	"testing"

	"github.com/pgstruct/pgstruct"
	"github.com/pgstruct/pgstruct/log/log15adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	log15 "gopkg.in/inconshreveable/log15.v2"
)

func TestLoggerWritesToLog15(t *testing.T) {
	var records []*log15.Record
	l := log15.New()
	l.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
		records = append(records, r)
		return nil
	}))

	adapter := log15adapter.NewLogger(l)
	adapter.Log(pgstruct.LogLevelInfo, "decoding row", map[string]interface{}{"columns": 2})
	adapter.Log(pgstruct.LogLevelError, "row decode failed", nil)

	require.Len(t, records, 2)
	assert.Equal(t, log15.LvlInfo, records[0].Lvl)
	assert.Equal(t, "decoding row", records[0].Msg)
	assert.Contains(t, records[0].Ctx, "columns")
	assert.Equal(t, log15.LvlError, records[1].Lvl)
}
