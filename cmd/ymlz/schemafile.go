package main

import (
	"fmt"
	"strings"

	"github.com/fuad-daoud/ymlz"
	"github.com/fuad-daoud/ymlz/schema"
)

// A schema descriptor is itself a document in the subset: a "fields"
// sequence of "name kind" entries. Dotted names group consecutive
// entries into nested records.
//
//	fields:
//	  - id int64
//	  - name string
//	  - tags []string
//	  - server.host string
//	  - server.port uint16
type descriptor struct {
	Fields []string `ymlz:"fields"`
}

type fieldSpec struct {
	path []string
	kind string
}

var kinds = map[string]schema.Field{
	"int8":     {Kind: schema.Int, Bits: 8},
	"int16":    {Kind: schema.Int, Bits: 16},
	"int32":    {Kind: schema.Int, Bits: 32},
	"int64":    {Kind: schema.Int, Bits: 64},
	"uint8":    {Kind: schema.Uint, Bits: 8},
	"uint16":   {Kind: schema.Uint, Bits: 16},
	"uint32":   {Kind: schema.Uint, Bits: 32},
	"uint64":   {Kind: schema.Uint, Bits: 64},
	"float32":  {Kind: schema.Float, Bits: 32},
	"float64":  {Kind: schema.Float, Bits: 64},
	"string":   {Kind: schema.String},
	"[]string": {Kind: schema.StringSeq},
}

func parseSchemaFile(data []byte) (*schema.Schema, error) {
	var d descriptor
	if err := ymlz.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	specs := make([]fieldSpec, 0, len(d.Fields))
	for _, entry := range d.Fields {
		name, kind, found := strings.Cut(entry, " ")
		if !found || name == "" || kind == "" {
			return nil, fmt.Errorf("descriptor entry %q is not \"name kind\"", entry)
		}
		specs = append(specs, fieldSpec{path: strings.Split(name, "."), kind: kind})
	}
	return buildSchema(specs)
}

func buildSchema(specs []fieldSpec) (*schema.Schema, error) {
	fields := []schema.Field{}
	for i := 0; i < len(specs); {
		spec := specs[i]
		if len(spec.path) == 1 {
			f, ok := kinds[spec.kind]
			if !ok {
				return nil, fmt.Errorf("field %q: unknown kind %q", spec.path[0], spec.kind)
			}
			f.Name = spec.path[0]
			fields = append(fields, f)
			i++
			continue
		}

		// consecutive dotted entries with the same head form one record
		head := spec.path[0]
		nested := []fieldSpec{}
		for i < len(specs) && len(specs[i].path) > 1 && specs[i].path[0] == head {
			nested = append(nested, fieldSpec{path: specs[i].path[1:], kind: specs[i].kind})
			i++
		}
		elem, err := buildSchema(nested)
		if err != nil {
			return nil, err
		}
		fields = append(fields, schema.Field{Name: head, Kind: schema.Record, Elem: elem})
	}
	return schema.New(fields...)
}
