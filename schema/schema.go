// Package schema holds the ordered field catalog of the guided form.
package schema

import (
	"fmt"

	"github.com/tbxark/docform/types"
)

// Schema is the immutable, ordered list of form fields.
type Schema struct {
	fields  []types.FieldSpec
	index   map[string]int
	primary string
}

// New validates fields and builds a Schema. An empty field type defaults to text.
// primaryKey names the field used for display names and may be empty.
func New(fields []types.FieldSpec, primaryKey string) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}
	s := &Schema{
		fields:  make([]types.FieldSpec, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
		primary: primaryKey,
	}
	for i, field := range fields {
		if field.Key == "" {
			return nil, fmt.Errorf("field %d: empty key", i)
		}
		if _, dup := s.index[field.Key]; dup {
			return nil, fmt.Errorf("field %d: duplicate key %q", i, field.Key)
		}
		if field.Type == "" {
			field.Type = types.ValidationText
		}
		if !field.Type.Known() {
			return nil, fmt.Errorf("field %q: unknown validation type %q", field.Key, field.Type)
		}
		if field.Prompt == "" {
			field.Prompt = fmt.Sprintf("Введіть %s:", field.Key)
		}
		s.index[field.Key] = i
		s.fields = append(s.fields, field)
	}
	if primaryKey != "" {
		if _, ok := s.index[primaryKey]; !ok {
			return nil, fmt.Errorf("primary key %q is not a field", primaryKey)
		}
	}
	return s, nil
}

// MustNew is New that panics on error, for literal schemas.
func MustNew(fields []types.FieldSpec, primaryKey string) *Schema {
	s, err := New(fields, primaryKey)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// At returns the field at position i.
func (s *Schema) At(i int) (types.FieldSpec, bool) {
	if i < 0 || i >= len(s.fields) {
		return types.FieldSpec{}, false
	}
	return s.fields[i], true
}

// Lookup returns the field with the given key and its position.
func (s *Schema) Lookup(key string) (types.FieldSpec, int, bool) {
	i, ok := s.index[key]
	if !ok {
		return types.FieldSpec{}, -1, false
	}
	return s.fields[i], i, true
}

// Fields returns a copy of the fields in form order.
func (s *Schema) Fields() []types.FieldSpec {
	out := make([]types.FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Keys returns the field keys in form order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, field := range s.fields {
		keys[i] = field.Key
	}
	return keys
}

func (s *Schema) PrimaryKey() string {
	return s.primary
}
