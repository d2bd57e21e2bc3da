// Package schema describes the shape of a destination ahead of decoding.
//
// A [Schema] is an ordered list of fields, each with a name and a kind.
// The decoder in the parent package walks a schema field by field,
// consuming document lines in declaration order; nothing about a schema
// changes once it has been built.
//
// Schemas come from two places: [Of] derives one from a Go struct type
// (once per type, cached), and [New] builds one by hand for callers that
// have no compiled destination type.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Kind is the semantic kind of a single field.
type Kind int8

const (
	Invalid = Kind(iota)
	Int
	Uint
	Float
	String
	StringSeq
	Record
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Int:
		return "Int"
	case Uint:
		return "Uint"
	case Float:
		return "Float"
	case String:
		return "String"
	case StringSeq:
		return "StringSeq"
	case Record:
		return "Record"
	default:
		panic("unknown Kind")
	}
}

// A Field describes one destination field.
//
// Bits is the integer width or float precision (8, 16, 32 or 64 for
// integers; 32 or 64 for floats) and is ignored for other kinds. Elem is
// the nested schema for Record fields and nil otherwise.
//
// For fields derived by [Of], goType records the unsupported Go type so
// the decoder can name it when it reaches the field.
type Field struct {
	Name string
	Kind Kind
	Bits int
	Elem *Schema

	goType reflect.Type
	index  int
}

// GoType returns the Go type an [Of]-derived field was built from, or
// nil for hand-built fields.
func (f *Field) GoType() reflect.Type { return f.goType }

// A Schema is an ordered, immutable description of a destination.
type Schema struct {
	fields []Field
}

// Fields returns the schema's fields in declaration order. The caller
// must not modify the returned slice.
func (s *Schema) Fields() []Field { return s.fields }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// New builds a schema from the given fields. It returns an error if a
// field has an empty name, an unknown kind, a width that makes no sense
// for its kind, or a Record kind without a nested schema.
func New(fields ...Field) (*Schema, error) {
	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("schema: field %d has no name", i)
		}
		switch f.Kind {
		case Int, Uint:
			switch f.Bits {
			case 8, 16, 32, 64:
			default:
				return nil, fmt.Errorf("schema: field %q: invalid integer width %d", f.Name, f.Bits)
			}
		case Float:
			if f.Bits != 32 && f.Bits != 64 {
				return nil, fmt.Errorf("schema: field %q: invalid float precision %d", f.Name, f.Bits)
			}
		case String, StringSeq:
		case Record:
			if f.Elem == nil {
				return nil, fmt.Errorf("schema: field %q: record without a nested schema", f.Name)
			}
		default:
			return nil, fmt.Errorf("schema: field %q: unknown kind %d", f.Name, f.Kind)
		}
		f.index = i
	}
	return &Schema{fields: fields}, nil
}

var cache sync.Map // reflect.Type -> *Schema

// Of derives the schema for a struct type. The derivation runs once per
// type; subsequent calls return the cached schema.
//
// Exported fields are taken in declaration order. Names honor a
// `ymlz:"name"` tag, then a `json:"name"` tag, and fall back to the
// snake_case form of the field name; a tag of "-" skips the field.
//
// A field whose Go type the decoder cannot populate is not an error
// here: it is recorded with the Invalid kind, and the walk fails when
// (and only when) it reaches that field.
func Of(t reflect.Type) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %v is not a struct", t)
	}
	if s, ok := cache.Load(t); ok {
		return s.(*Schema), nil
	}
	s, err := ofStruct(t)
	if err != nil {
		return nil, err
	}
	cache.Store(t, s)
	return s, nil
}

func ofStruct(t reflect.Type) (*Schema, error) {
	fields := []Field{}
	for i := range t.NumField() {
		ft := t.Field(i)
		if !ft.IsExported() {
			continue
		}
		name, skip := fieldName(ft)
		if skip {
			continue
		}
		f, err := fieldOf(name, ft.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}
		f.index = i
		fields = append(fields, f)
	}
	return &Schema{fields: fields}, nil
}

func fieldOf(name string, t reflect.Type) (Field, error) {
	f := Field{Name: name, goType: t}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.Kind = Int
		f.Bits = bitsOf(t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.Kind = Uint
		f.Bits = bitsOf(t)
	case reflect.Float32, reflect.Float64:
		f.Kind = Float
		f.Bits = bitsOf(t)
	case reflect.String:
		f.Kind = String
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			// surfaces as UnsupportedSchemaKind when the walk gets here
			f.Kind = Invalid
			break
		}
		f.Kind = StringSeq
	case reflect.Struct:
		elem, err := ofStruct(t)
		if err != nil {
			return f, err
		}
		f.Kind = Record
		f.Elem = elem
	default:
		f.Kind = Invalid
	}
	return f, nil
}

func bitsOf(t reflect.Type) int {
	switch t.Kind() {
	case reflect.Int, reflect.Uint:
		return strconv.IntSize
	default:
		return int(t.Size()) * 8
	}
}

func fieldName(ft reflect.StructField) (name string, skip bool) {
	for _, key := range []string{"ymlz", "json"} {
		if tag, ok := ft.Tag.Lookup(key); ok {
			if tag == "-" {
				return "", true
			}
			name, _, _ = strings.Cut(tag, ",")
			if name != "" {
				return name, false
			}
		}
	}
	return toSnakeCase(ft.Name), false
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

// Index reports the struct field index an [Of]-derived field binds to.
// Hand-built fields bind to their position in the field list.
func (f *Field) Index() int { return f.index }
