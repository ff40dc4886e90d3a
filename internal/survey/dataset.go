// Package survey computes frequency, bucket and group statistics over
// respondent-level survey tables.
package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindMissing valueKind = iota
	kindText
	kindNumber
)

// Value is a single cell: missing, a text label, or a number.
// The zero Value is missing.
type Value struct {
	kind valueKind
	text string
	num  float64
}

// Missing returns the explicit-missing marker.
func Missing() Value { return Value{} }

// Text wraps a raw string cell.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// IsMissing reports whether the cell holds no answer.
func (v Value) IsMissing() bool { return v.kind == kindMissing }

// IsNumber reports whether the cell already holds a parsed number.
func (v Value) IsNumber() bool { return v.kind == kindNumber }

// String returns the label form of the cell. Numbers use the shortest
// representation; missing cells return "".
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return formatFloat(v.num)
	default:
		return ""
	}
}

// Float returns the numeric form of the cell. Text cells are parsed after
// trimming spaces; ok is false for missing, unparseable or non-finite cells.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Dataset is an in-memory table of respondents (rows) by named fields.
type Dataset struct {
	Name   string
	fields []string
	index  map[string]int
	rows   [][]Value
}

// NewDataset creates an empty dataset with the given schema. Field names
// must be unique.
func NewDataset(fields ...string) (*Dataset, error) {
	ds := &Dataset{
		fields: make([]string, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(ds.fields, fields)
	for i, f := range fields {
		if _, dup := ds.index[f]; dup {
			return nil, fmt.Errorf("duplicate field %q: %w", f, ErrInvalidArgument)
		}
		ds.index[f] = i
	}
	return ds, nil
}

// Fields returns the schema in column order.
func (ds *Dataset) Fields() []string {
	out := make([]string, len(ds.fields))
	copy(out, ds.fields)
	return out
}

// HasField reports whether field is part of the schema.
func (ds *Dataset) HasField(field string) bool {
	_, ok := ds.index[field]
	return ok
}

// Len returns the number of rows.
func (ds *Dataset) Len() int { return len(ds.rows) }

// Append adds a row. Short rows are padded with missing values; long rows
// are rejected.
func (ds *Dataset) Append(row ...Value) error {
	if len(row) > len(ds.fields) {
		return fmt.Errorf("row has %d values for %d fields: %w", len(row), len(ds.fields), ErrInvalidArgument)
	}
	r := make([]Value, len(ds.fields))
	copy(r, row)
	ds.rows = append(ds.rows, r)
	return nil
}

// Value returns the cell at row i for field.
func (ds *Dataset) Value(i int, field string) (Value, error) {
	j, err := ds.col(field)
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= len(ds.rows) {
		return Value{}, fmt.Errorf("row %d out of range [0,%d): %w", i, len(ds.rows), ErrInvalidArgument)
	}
	return ds.rows[i][j], nil
}

// Column returns a copy of every cell of field in row order.
func (ds *Dataset) Column(field string) ([]Value, error) {
	j, err := ds.col(field)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(ds.rows))
	for i, r := range ds.rows {
		out[i] = r[j]
	}
	return out, nil
}

// Row is a read-only accessor handed to Filter predicates.
type Row struct {
	ds  *Dataset
	idx int
}

// Get returns the named cell, or missing when field is not in the schema.
func (r Row) Get(field string) Value {
	j, ok := r.ds.index[field]
	if !ok {
		return Missing()
	}
	return r.ds.rows[r.idx][j]
}

// Filter returns a new dataset with the same schema holding only the rows
// for which keep returns true. Rows are shared, not copied.
func (ds *Dataset) Filter(keep func(Row) bool) *Dataset {
	out := &Dataset{Name: ds.Name, fields: ds.fields, index: ds.index}
	for i := range ds.rows {
		if keep(Row{ds: ds, idx: i}) {
			out.rows = append(out.rows, ds.rows[i])
		}
	}
	return out
}

func (ds *Dataset) col(field string) (int, error) {
	j, ok := ds.index[field]
	if !ok {
		return 0, &FieldError{Field: field, Err: ErrFieldNotFound}
	}
	return j, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
