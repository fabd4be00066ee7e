package pgstruct

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var anyType = reflect.TypeOf((*interface{})(nil)).Elem()

// DecoderConfig contains the settings for a Decoder.
type DecoderConfig struct {
	// Logger and LogLevel enable tracing of decoder internals. A nil Logger
	// disables logging entirely. When Logger is set and LogLevel is the
	// zero value, the level defaults to LogLevelDebug.
	Logger   Logger
	LogLevel LogLevel
}

// Decoder converts rows into Go values. A Decoder is safe for concurrent
// use: a decode call shares nothing with other calls except read-only data.
type Decoder struct {
	logger   Logger
	logLevel LogLevel
}

// NewDecoder creates a Decoder from config. The zero config is valid.
func NewDecoder(config DecoderConfig) *Decoder {
	d := &Decoder{logger: config.Logger, logLevel: config.LogLevel}
	if d.logger != nil && d.logLevel == 0 {
		d.logLevel = LogLevelDebug
	}
	return d
}

var defaultDecoder = NewDecoder(DecoderConfig{})

// FromRow decodes row into a value of type T using the default Decoder.
// Struct fields are matched to columns by name.
func FromRow[T any](row *Row) (T, error) {
	var value T
	err := defaultDecoder.Decode(row, &value)
	return value, err
}

// FromRowByPos decodes row into a value of type T using the default
// Decoder. Struct fields and array positions are matched to columns by
// position.
func FromRowByPos[T any](row *Row) (T, error) {
	var value T
	err := defaultDecoder.DecodeByPos(row, &value)
	return value, err
}

// FromRowToMap returns a map of the row with the column names as keys and
// the column values decoded to their natural Go types.
func FromRowToMap(row *Row) (map[string]interface{}, error) {
	var value map[string]interface{}
	err := defaultDecoder.Decode(row, &value)
	return value, err
}

// Decode decodes row into dst using the default Decoder. dst must be a
// non-nil pointer.
func Decode(row *Row, dst interface{}) error {
	return defaultDecoder.Decode(row, dst)
}

// DecodeByPos decodes row into dst positionally using the default Decoder.
// dst must be a non-nil pointer.
func DecodeByPos(row *Row, dst interface{}) error {
	return defaultDecoder.DecodeByPos(row, dst)
}

// Decode decodes row into dst, matching struct fields to columns by name.
// dst must be a non-nil pointer. The first failure aborts the whole decode;
// there is no partial result.
func (d *Decoder) Decode(row *Row, dst interface{}) error {
	dstValue, err := targetValue(row, dst)
	if err != nil {
		return err
	}

	if d.shouldLog(LogLevelTrace) {
		d.log(LogLevelTrace, "decoding row", map[string]interface{}{"columns": row.Len(), "target": dstValue.Type().String()})
	}

	if err := d.decodeRow(row, dstValue); err != nil {
		if d.shouldLog(LogLevelError) {
			d.log(LogLevelError, "row decode failed", map[string]interface{}{"target": dstValue.Type().String(), "err": err})
		}
		return err
	}
	return nil
}

// DecodeByPos decodes row into dst, matching struct fields (after expanding
// anonymous embedded structs) or array positions to columns by position.
// The arity must match exactly in both directions.
func (d *Decoder) DecodeByPos(row *Row, dst interface{}) error {
	dstValue, err := targetValue(row, dst)
	if err != nil {
		return err
	}

	if d.shouldLog(LogLevelTrace) {
		d.log(LogLevelTrace, "decoding row positionally", map[string]interface{}{"columns": row.Len(), "target": dstValue.Type().String()})
	}

	if err := d.decodeRowByPos(row, dstValue); err != nil {
		if d.shouldLog(LogLevelError) {
			d.log(LogLevelError, "row decode failed", map[string]interface{}{"target": dstValue.Type().String(), "err": err})
		}
		return err
	}
	return nil
}

func targetValue(row *Row, dst interface{}) (reflect.Value, error) {
	if row == nil {
		return reflect.Value{}, errors.New("row is nil")
	}
	dstValue := reflect.ValueOf(dst)
	if dstValue.Kind() != reflect.Ptr || dstValue.IsNil() {
		return reflect.Value{}, fmt.Errorf("dst must be a non-nil pointer, got %T", dst)
	}
	return dstValue.Elem(), nil
}

func (d *Decoder) shouldLog(lvl LogLevel) bool {
	return d.logger != nil && d.logLevel >= lvl
}

func (d *Decoder) log(lvl LogLevel, msg string, data map[string]interface{}) {
	d.logger.Log(lvl, msg, data)
}

// decodeRow dispatches on the target's shape: pointers are optional values,
// structs decode by field name (or as one JSON document), maps collect the
// whole row, slices decode an array column or treat the row as a sequence,
// and scalar targets require a single-column row.
func (d *Decoder) decodeRow(row *Row, dst reflect.Value) error {
	t := dst.Type()

	if t.Kind() == reflect.Ptr {
		if row.Len() == 1 {
			if col, _ := row.Column(0); col.IsNull() {
				dst.Set(reflect.Zero(t))
				return nil
			}
		}
		if dst.IsNil() {
			dst.Set(reflect.New(t.Elem()))
		}
		return d.decodeRow(row, dst.Elem())
	}

	// A row that is one json or jsonb column is a document: construct
	// document-shaped targets from it directly.
	if row.Len() == 1 {
		if col, _ := row.Column(0); isJSONOID(col.OID) && isDocumentTarget(t) {
			if col.IsNull() {
				return NullValueError{Column: col.Name, Target: t}
			}
			if t.Kind() == reflect.Struct {
				return d.decodeStructFromJSON(col, dst)
			}
			return decodeJSON(col, dst.Addr().Interface())
		}
	}

	switch t.Kind() {
	case reflect.Struct:
		if t == decimalType {
			return d.decodeSingleColumn(row, dst)
		}
		return d.decodeStructByName(row, dst)
	case reflect.Map:
		return d.decodeRowIntoMap(row, dst)
	case reflect.Slice:
		return d.decodeRowIntoSlice(row, dst)
	case reflect.Array:
		return d.decodeArrayByPos(row, dst)
	case reflect.Interface:
		return d.decodeRowIntoInterface(row, dst)
	default:
		return d.decodeSingleColumn(row, dst)
	}
}

func isDocumentTarget(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return t != decimalType
	case reflect.Map:
		return true
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	}
	return false
}

func (d *Decoder) decodeSingleColumn(row *Row, dst reflect.Value) error {
	if row.Len() == 0 {
		return fmt.Errorf("cannot decode empty row into %s", dst.Type())
	}
	if row.Len() > 1 {
		return ArityMismatchError{Columns: row.Len(), Fields: 1}
	}
	col, _ := row.Column(0)
	return d.decodeColumn(col, dst)
}

func (d *Decoder) decodeStructByName(row *Row, dst reflect.Value) error {
	plan, err := structPlanFor(dst.Type())
	if err != nil {
		return err
	}

	bindings, err := plan.resolve(row, "", make(map[int]string))
	if err != nil {
		return err
	}

	return d.decodeBindings(bindings, dst)
}

func (d *Decoder) decodeBindings(bindings []binding, dst reflect.Value) error {
	for _, b := range bindings {
		field := dst.Field(b.field.index)

		if b.index < 0 {
			// Flattened nested struct: its bindings already point at
			// columns of the same row.
			if d.shouldLog(LogLevelTrace) {
				d.log(LogLevelTrace, "flattening struct field", map[string]interface{}{"field": b.path})
			}
			if err := d.decodeBindings(b.sub, field); err != nil {
				return err
			}
			continue
		}

		if err := d.decodeColumn(b.col, field); err != nil {
			return ColumnDecodeError{ColumnName: b.col.Name, ColumnIndex: b.index, FieldPath: b.path, Err: err}
		}
	}
	return nil
}

// decodeStructFromJSON constructs a struct target from a single json or
// jsonb column. When the document is an object that already carries the
// struct's field names, it is decoded directly. A document missing the name
// of a struct's only field is treated as the value of that field. An object
// missing names of a multi-field struct is an error rather than a partial
// result.
func (d *Decoder) decodeStructFromJSON(col Column, dst reflect.Value) error {
	text, err := jsonText(col)
	if err != nil {
		return err
	}

	var obj map[string]json.RawMessage
	if json.Unmarshal(text, &obj) != nil {
		// Not a JSON object: delegate and let the target decide.
		return decodeJSON(col, dst.Addr().Interface())
	}

	plan, err := structPlanFor(dst.Type())
	if err != nil {
		return err
	}

	var missing []string
	for _, pf := range plan.fields {
		if !jsonObjectHasKey(obj, pf.column) {
			missing = append(missing, pf.column)
		}
	}

	if len(missing) == 0 {
		return decodeJSON(col, dst.Addr().Interface())
	}

	if len(plan.fields) == 1 {
		// The document is the value of the struct's only field.
		field := dst.Field(plan.fields[0].index)
		if err := d.decodeColumn(col, field); err != nil {
			return ColumnDecodeError{ColumnName: col.Name, FieldPath: plan.fields[0].name, Err: err}
		}
		return nil
	}

	return ColumnDecodeError{
		ColumnName: col.Name,
		Err:        fmt.Errorf("JSON object is missing expected keys %q", missing),
	}
}

func jsonObjectHasKey(obj map[string]json.RawMessage, name string) bool {
	if _, ok := obj[name]; ok {
		return true
	}
	for k := range obj {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func (d *Decoder) decodeRowIntoMap(row *Row, dst reflect.Value) error {
	t := dst.Type()
	if t.Key().Kind() != reflect.String {
		return fmt.Errorf("cannot decode row into %s: map keys must be strings", t)
	}

	out := reflect.MakeMapWithSize(t, row.Len())
	for i := 0; i < row.Len(); i++ {
		col, _ := row.Column(i)
		value := reflect.New(t.Elem()).Elem()
		if err := d.decodeColumn(col, value); err != nil {
			return ColumnDecodeError{ColumnName: col.Name, ColumnIndex: i, Err: err}
		}
		out.SetMapIndex(reflect.ValueOf(col.Name).Convert(t.Key()), value)
	}
	dst.Set(out)
	return nil
}

func (d *Decoder) decodeRowIntoSlice(row *Row, dst reflect.Value) error {
	// A single array column fills the slice from its elements; anything
	// else treats the row itself as the sequence.
	if row.Len() == 1 {
		col, _ := row.Column(0)
		_, isArray := ArrayElementOID(col.OID)
		if isArray || col.OID == ByteaOID {
			if col.IsNull() {
				return NullValueError{Column: col.Name, Target: dst.Type()}
			}
			return d.decodeColumn(col, dst)
		}
	}

	out := reflect.MakeSlice(dst.Type(), row.Len(), row.Len())
	for i := 0; i < row.Len(); i++ {
		col, _ := row.Column(i)
		if err := d.decodeColumn(col, out.Index(i)); err != nil {
			return ColumnDecodeError{ColumnName: col.Name, ColumnIndex: i, Err: err}
		}
	}
	dst.Set(out)
	return nil
}

func (d *Decoder) decodeRowIntoInterface(row *Row, dst reflect.Value) error {
	if dst.Type() != anyType {
		return fmt.Errorf("cannot decode row into non-empty interface %s", dst.Type())
	}

	if row.Len() == 1 {
		col, _ := row.Column(0)
		v, err := d.naturalValue(col)
		if err != nil {
			return err
		}
		setInterface(dst, v)
		return nil
	}

	values := make([]interface{}, row.Len())
	for i := 0; i < row.Len(); i++ {
		col, _ := row.Column(i)
		v, err := d.naturalValue(col)
		if err != nil {
			return ColumnDecodeError{ColumnName: col.Name, ColumnIndex: i, Err: err}
		}
		values[i] = v
	}
	dst.Set(reflect.ValueOf(values))
	return nil
}

func (d *Decoder) decodeRowByPos(row *Row, dst reflect.Value) error {
	t := dst.Type()

	if t.Kind() == reflect.Ptr {
		if row.Len() == 1 {
			if col, _ := row.Column(0); col.IsNull() {
				dst.Set(reflect.Zero(t))
				return nil
			}
		}
		if dst.IsNil() {
			dst.Set(reflect.New(t.Elem()))
		}
		return d.decodeRowByPos(row, dst.Elem())
	}

	switch t.Kind() {
	case reflect.Struct:
		if t == decimalType {
			return d.decodeSingleColumn(row, dst)
		}
		targets := appendFieldTargets(dst, nil)
		if len(targets) != row.Len() {
			return ArityMismatchError{Columns: row.Len(), Fields: len(targets)}
		}
		for i, tgt := range targets {
			col, _ := row.Column(i)
			if err := d.decodeColumn(col, tgt.value); err != nil {
				return ColumnDecodeError{ColumnName: col.Name, ColumnIndex: i, FieldPath: tgt.name, Err: err}
			}
		}
		return nil
	case reflect.Array:
		return d.decodeArrayByPos(row, dst)
	default:
		return d.decodeRow(row, dst)
	}
}

func (d *Decoder) decodeArrayByPos(row *Row, dst reflect.Value) error {
	if dst.Len() != row.Len() {
		return ArityMismatchError{Columns: row.Len(), Fields: dst.Len()}
	}
	for i := 0; i < dst.Len(); i++ {
		col, _ := row.Column(i)
		if err := d.decodeColumn(col, dst.Index(i)); err != nil {
			return ColumnDecodeError{ColumnName: col.Name, ColumnIndex: i, Err: err}
		}
	}
	return nil
}

type posTarget struct {
	value reflect.Value
	name  string
}

// appendFieldTargets collects the positional field targets of a struct,
// expanding anonymous struct embedding. Embedded pointers are not handled.
func appendFieldTargets(dstValue reflect.Value, targets []posTarget) []posTarget {
	t := dstValue.Type()
	if targets == nil {
		targets = make([]posTarget, 0, t.NumField())
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			targets = appendFieldTargets(dstValue.Field(i), targets)
			continue
		}
		if sf.PkgPath != "" {
			// Field is unexported, skip it.
			continue
		}
		if tag, ok := sf.Tag.Lookup(structTagKey); ok && strings.Split(tag, ",")[0] == "-" {
			continue
		}
		targets = append(targets, posTarget{value: dstValue.Field(i), name: sf.Name})
	}

	return targets
}

// decodeColumn decodes one column into one target value, recursing through
// pointers (NULL becomes nil), array elements, and JSON documents.
func (d *Decoder) decodeColumn(col Column, dst reflect.Value) error {
	t := dst.Type()

	if t.Kind() == reflect.Ptr {
		if col.IsNull() {
			dst.Set(reflect.Zero(t))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(t.Elem()))
		}
		return d.decodeColumn(col, dst.Elem())
	}

	if t.Kind() == reflect.Interface {
		if t != anyType {
			return fmt.Errorf("cannot decode column %q into non-empty interface %s", col.Name, t)
		}
		v, err := d.naturalValue(col)
		if err != nil {
			return err
		}
		setInterface(dst, v)
		return nil
	}

	if col.IsNull() {
		return NullValueError{Column: col.Name, Target: t}
	}

	if isJSONOID(col.OID) {
		return decodeJSON(col, dst.Addr().Interface())
	}

	if t == decimalType {
		if col.OID != NumericOID {
			return typeMismatch(col, dst)
		}
		dec, err := decodeNumeric(col.Value)
		if err != nil {
			return typeMismatchReason(col, dst, err.Error())
		}
		dst.Set(reflect.ValueOf(dec))
		return nil
	}

	if _, isArray := ArrayElementOID(col.OID); isArray {
		if t.Kind() != reflect.Slice {
			return typeMismatch(col, dst)
		}
		return d.decodeArrayColumn(col, dst)
	}

	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Uint8 || col.OID != ByteaOID {
			return typeMismatch(col, dst)
		}
		buf := make([]byte, len(col.Value))
		copy(buf, col.Value)
		dst.SetBytes(buf)
		return nil
	case reflect.Struct, reflect.Map:
		// Sub-documents only arrive as json or jsonb columns.
		return typeMismatch(col, dst)
	default:
		return convertColumn(col, dst)
	}
}

func (d *Decoder) decodeArrayColumn(col Column, dst reflect.Value) error {
	elements, err := decodeArray(col)
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(dst.Type(), len(elements), len(elements))
	for i := range elements {
		if err := d.decodeColumn(elements[i], out.Index(i)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

var naturalTypes = map[uint32]reflect.Type{
	BoolOID:    reflect.TypeOf(false),
	ByteaOID:   reflect.TypeOf([]byte(nil)),
	Int2OID:    reflect.TypeOf(int16(0)),
	Int4OID:    reflect.TypeOf(int32(0)),
	Int8OID:    reflect.TypeOf(int64(0)),
	Float4OID:  reflect.TypeOf(float32(0)),
	Float8OID:  reflect.TypeOf(float64(0)),
	TextOID:    reflect.TypeOf(""),
	VarcharOID: reflect.TypeOf(""),
	BPCharOID:  reflect.TypeOf(""),
	NumericOID: decimalType,
}

// naturalValue decodes a column into the natural Go type for its oid: the
// result type is driven by the column, not by a target.
func (d *Decoder) naturalValue(col Column) (interface{}, error) {
	if col.IsNull() {
		return nil, nil
	}

	if isJSONOID(col.OID) {
		var doc interface{}
		if err := decodeJSON(col, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	if _, isArray := ArrayElementOID(col.OID); isArray {
		elements, err := decodeArray(col)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(elements))
		for i := range elements {
			v, err := d.naturalValue(elements[i])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	t, ok := naturalTypes[col.OID]
	if !ok {
		return nil, TypeMismatchError{Column: col.Name, OID: col.OID, Target: anyType, Reason: "unsupported column type"}
	}

	v := reflect.New(t).Elem()
	if err := d.decodeColumn(col, v); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func setInterface(dst reflect.Value, v interface{}) {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	dst.Set(reflect.ValueOf(v))
}
