package index

import (
	"fmt"

	"github.com/cassiomolin/lucene-example/internal/domain"
)

// Field is one (field, value) tuple of a document. Value is a string for
// every kind except KindNumeric, which carries an int64.
type Field struct {
	Def   domain.Field
	Value any
}

// Document is the unit the store indexes and returns. The same field may
// appear more than once; tuple order is the order of insertion.
type Document struct {
	ID     string
	Fields []Field
}

// NewDocument returns an empty document with the given ID.
func NewDocument(id string) *Document {
	return &Document{ID: id}
}

// AddString appends a string tuple.
func (d *Document) AddString(f domain.Field, value string) *Document {
	d.Fields = append(d.Fields, Field{Def: f, Value: value})
	return d
}

// AddInt appends an integer tuple. Values beyond MaxExactInt in magnitude are rejected by Store.Add.
func (d *Document) AddInt(f domain.Field, value int64) *Document {
	d.Fields = append(d.Fields, Field{Def: f, Value: value})
	return d
}

// AddDate appends a date tuple in its sortable string encoding.
func (d *Document) AddDate(f domain.Field, value domain.Date) *Document {
	return d.AddString(f, EncodeDate(value))
}

// String returns the first string value of f, or "" when absent.
func (d Document) String(f domain.Field) string {
	for _, fv := range d.Fields {
		if fv.Def.Name() != f.Name() {
			continue
		}
		if s, ok := fv.Value.(string); ok {
			return s
		}
	}
	return ""
}

// Strings returns every string value of f in tuple order.
func (d Document) Strings(f domain.Field) []string {
	var out []string
	for _, fv := range d.Fields {
		if fv.Def.Name() != f.Name() {
			continue
		}
		if s, ok := fv.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Int returns the first integer value of f.
func (d Document) Int(f domain.Field) (int64, bool) {
	for _, fv := range d.Fields {
		if fv.Def.Name() != f.Name() {
			continue
		}
		if n, ok := fv.Value.(int64); ok {
			return n, true
		}
	}
	return 0, false
}

// Has reports whether the document carries f at least once.
func (d Document) Has(f domain.Field) bool {
	for _, fv := range d.Fields {
		if fv.Def.Name() == f.Name() {
			return true
		}
	}
	return false
}

// MaxExactInt is the largest integer magnitude a numeric field holds
// exactly. Bleve keeps numbers as float64.
const MaxExactInt = 1 << 53

func (d Document) checkInts() error {
	for _, fv := range d.Fields {
		n, ok := fv.Value.(int64)
		if ok && (n > MaxExactInt || n < -MaxExactInt) {
			return fmt.Errorf("field %s: %d exceeds the exact integer range", fv.Def.Name(), n)
		}
	}
	return nil
}

// data converts the document into the map bleve indexes. Repeated fields
// become slices in tuple order; integers become float64, bleve's numeric type.
func (d Document) data() map[string]interface{} {
	m := make(map[string]interface{}, len(d.Fields))
	for _, fv := range d.Fields {
		name := fv.Def.Name()
		v := fv.Value
		if n, ok := v.(int64); ok {
			v = float64(n)
		}
		existing, ok := m[name]
		if !ok {
			if fv.Def.MultiValued() {
				m[name] = []interface{}{v}
			} else {
				m[name] = v
			}
			continue
		}
		if list, isList := existing.([]interface{}); isList {
			m[name] = append(list, v)
		} else {
			m[name] = []interface{}{existing, v}
		}
	}
	return m
}
