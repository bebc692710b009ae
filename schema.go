package esql

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldType identifies the Elasticsearch mapping type of a schema field.
type FieldType string

// Supported mapping types.
const (
	TypeKeyword  FieldType = "keyword"
	TypeText     FieldType = "text"
	TypeBoolean  FieldType = "boolean"
	TypeByte     FieldType = "byte"
	TypeShort    FieldType = "short"
	TypeInteger  FieldType = "integer"
	TypeLong     FieldType = "long"
	TypeFloat    FieldType = "float"
	TypeDouble   FieldType = "double"
	TypeDate     FieldType = "date"
	TypeIP       FieldType = "ip"
	TypeGeoPoint FieldType = "geo_point"
	TypeObject   FieldType = "object"
	TypeNested   FieldType = "nested"
)

// FieldDef describes one schema field. Object and nested fields carry
// sub-field definitions; leaf fields carry a mapping type.
type FieldDef struct {
	Name   string
	Type   FieldType
	Fields []FieldDef
}

// F defines a leaf field.
func F(name string, fieldType FieldType) FieldDef {
	return FieldDef{Name: name, Type: fieldType}
}

// Object defines an object field with sub-fields.
func Object(name string, fields ...FieldDef) FieldDef {
	return FieldDef{Name: name, Type: TypeObject, Fields: fields}
}

// Nested defines a nested field with sub-fields.
func Nested(name string, fields ...FieldDef) FieldDef {
	return FieldDef{Name: name, Type: TypeNested, Fields: fields}
}

// Schema is the ordered field registry of one document type, bound to the
// index the documents live in. It is built once at registration time and
// read-only afterwards: pipelines use it to validate field references and
// the materializer uses it to partition result columns.
type Schema struct {
	index  string
	fields []FieldDef
	paths  []string
	types  map[string]FieldType
	// objects records container paths so a leaf and an object with the
	// same name collide regardless of declaration order.
	objects map[string]bool
}

// NewSchema registers a document type: the index name and its ordered
// field definitions. Nested object fields are flattened to dotted leaf
// paths (e.g. "address.city").
func NewSchema(index string, fields ...FieldDef) (*Schema, error) {
	if index == "" {
		return nil, errors.New("schema index name is empty")
	}
	if len(fields) == 0 {
		return nil, errors.New("schema has no fields")
	}

	s := &Schema{
		index:   index,
		fields:  fields,
		types:   make(map[string]FieldType),
		objects: make(map[string]bool),
	}
	if err := s.register("", fields); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) register(prefix string, fields []FieldDef) error {
	for _, f := range fields {
		if f.Name == "" {
			return errors.Errorf("schema %q: field with empty name", s.index)
		}
		if strings.Contains(f.Name, ".") {
			return errors.Errorf("schema %q: field name %q must not contain dots, use Object sub-fields", s.index, f.Name)
		}

		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		if _, ok := s.types[path]; ok {
			return errors.Errorf("schema %q: duplicate field %q", s.index, path)
		}
		if s.objects[path] {
			return errors.Errorf("schema %q: duplicate field %q", s.index, path)
		}

		if f.Type == TypeObject || f.Type == TypeNested {
			if len(f.Fields) == 0 {
				return errors.Errorf("schema %q: %s field %q has no sub-fields", s.index, f.Type, path)
			}
			s.objects[path] = true
			if err := s.register(path, f.Fields); err != nil {
				return err
			}
			continue
		}
		if len(f.Fields) > 0 {
			return errors.Errorf("schema %q: leaf field %q must not carry sub-fields", s.index, path)
		}
		s.types[path] = f.Type
		s.paths = append(s.paths, path)
	}
	return nil
}

// Index returns the index name the schema is bound to.
func (s *Schema) Index() string { return s.index }

// Paths returns the flattened leaf field paths in declaration order.
func (s *Schema) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Has reports whether path names a leaf field of the schema.
func (s *Schema) Has(path string) bool {
	_, ok := s.types[path]
	return ok
}

// TypeOf returns the mapping type of a leaf field.
func (s *Schema) TypeOf(path string) (FieldType, bool) {
	t, ok := s.types[path]
	return t, ok
}

// Field returns a typed field reference into the schema. Existence is
// checked when the reference is used in a pipeline bound to this schema.
func (s *Schema) Field(path string) Expr {
	return Field(path)
}
