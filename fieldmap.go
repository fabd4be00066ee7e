package pgstruct

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const structTagKey = "db"

var decimalType = reflect.TypeOf(decimal.Decimal{})

// plannedField is one visible field of a struct target. A field either binds
// to a single column or flattens a nested struct into the parent's column
// namespace.
type plannedField struct {
	column string // column name: db tag if present, else the field name
	index  int    // field index within the struct
	name   string // Go field name, used in error paths
	sub    *structPlan
	// embedded fields and fields tagged db:",flatten" always flatten.
	// Plain struct-typed fields flatten only when the row has no column
	// with their name; otherwise the column itself is decoded (json or
	// jsonb sub-documents).
	alwaysFlatten bool
}

// structPlan is the per-type half of field mapping: which fields exist and
// what column name each wants. It is row-independent and cached per type;
// binding names to column indexes happens per call in resolve.
type structPlan struct {
	fields []plannedField
}

var structPlans sync.Map // reflect.Type -> *structPlan

// structPlanFor returns the cached field plan for a struct type, building it
// on first use.
func structPlanFor(t reflect.Type) (*structPlan, error) {
	if cached, ok := structPlans.Load(t); ok {
		return cached.(*structPlan), nil
	}

	plan, err := buildStructPlan(t)
	if err != nil {
		return nil, err
	}

	actual, _ := structPlans.LoadOrStore(t, plan)
	return actual.(*structPlan), nil
}

func buildStructPlan(t reflect.Type) (*structPlan, error) {
	plan := &structPlan{}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			// Field is unexported, skip it.
			continue
		}

		tag, tagPresent := sf.Tag.Lookup(structTagKey)
		var tagName string
		var flatten bool
		if tagPresent {
			parts := strings.Split(tag, ",")
			tagName = parts[0]
			for _, opt := range parts[1:] {
				if opt == "flatten" {
					flatten = true
				}
			}
		}
		if tagName == "-" {
			// Field is ignored, skip it.
			continue
		}

		pf := plannedField{
			column: tagName,
			index:  i,
			name:   sf.Name,
		}
		if pf.column == "" {
			pf.column = sf.Name
		}

		isPlainStruct := sf.Type.Kind() == reflect.Struct && sf.Type != decimalType

		switch {
		case flatten:
			if !isPlainStruct {
				return nil, fmt.Errorf("field %s of %s is tagged %q but is not a struct", sf.Name, t, "flatten")
			}
			sub, err := structPlanFor(sf.Type)
			if err != nil {
				return nil, err
			}
			pf.sub = sub
			pf.alwaysFlatten = true
		case sf.Anonymous && isPlainStruct:
			// Anonymous struct embedding flattens. Embedded pointers are
			// not handled.
			sub, err := structPlanFor(sf.Type)
			if err != nil {
				return nil, err
			}
			pf.sub = sub
			pf.alwaysFlatten = true
		case isPlainStruct:
			sub, err := structPlanFor(sf.Type)
			if err != nil {
				return nil, err
			}
			pf.sub = sub
		}

		plan.fields = append(plan.fields, pf)
	}

	return plan, nil
}

// binding is one resolved obligation of a decode: either a concrete column
// feeding a field, or a flattened nested struct with its own bindings.
type binding struct {
	field plannedField
	col   Column
	index int
	path  string
	sub   []binding
}

// resolve binds every planned field to a column of row, descending into
// flattened structs against the same flat column namespace (no prefixing).
// claimed tracks which column index is taken by which field path; two fields
// resolving to the same column fail with FieldCollisionError before any
// value is decoded.
func (p *structPlan) resolve(row *Row, pathPrefix string, claimed map[int]string) ([]binding, error) {
	bindings := make([]binding, 0, len(p.fields))

	for _, pf := range p.fields {
		path := pf.name
		if pathPrefix != "" {
			path = pathPrefix + "." + pf.name
		}

		col, idx, found := row.ColumnByName(pf.column)

		if pf.sub != nil && (pf.alwaysFlatten || !found) {
			sub, err := pf.sub.resolve(row, path, claimed)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, binding{field: pf, index: -1, path: path, sub: sub})
			continue
		}

		if !found {
			return nil, MissingColumnError{Column: pf.column}
		}
		if prev, taken := claimed[idx]; taken {
			return nil, FieldCollisionError{Column: col.Name, Fields: [2]string{prev, path}}
		}
		claimed[idx] = path

		bindings = append(bindings, binding{field: pf, col: col, index: idx, path: path})
	}

	return bindings, nil
}
