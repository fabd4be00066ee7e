package pgstruct

import (
	"encoding/json"
	"errors"
	"fmt"
)

// decodeJSON decodes a non-NULL json or jsonb column into dst, which must be
// a non-nil pointer. Construction of the target from the parsed document is
// delegated entirely to encoding/json; this engine only strips the jsonb
// framing and reports positional errors.
func decodeJSON(col Column, dst interface{}) error {
	text, err := jsonText(col)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(text, dst); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return JSONSyntaxError{Column: col.Name, Err: err}
		}
		return fmt.Errorf("cannot decode %s column %q: %w", OIDName(col.OID), col.Name, err)
	}

	return nil
}

// jsonText returns the JSON text of a json or jsonb column. jsonb payloads
// carry a single version byte before the text; only version 1 exists.
func jsonText(col Column) ([]byte, error) {
	if col.OID == JSONBOID {
		if len(col.Value) == 0 || col.Value[0] != 1 {
			return nil, JSONSyntaxError{Column: col.Name, Err: errors.New("unknown jsonb payload version")}
		}
		return col.Value[1:], nil
	}
	return col.Value, nil
}
