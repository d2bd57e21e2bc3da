package ymlz

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/fuad-daoud/ymlz/schema"
)

// A Record is the decoded instance of one schema: one value per field,
// in declaration order. Scalar fields hold int64, uint64, float64 or
// string; sequence fields hold []string; nested records hold *Record.
//
// A Record is only ever returned fully populated.
type Record struct {
	schema *schema.Schema
	values []any
}

// Schema returns the schema this record was decoded against.
func (r *Record) Schema() *schema.Schema { return r.schema }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.values) }

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	for i, f := range r.schema.Fields() {
		if f.Name == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// All iterates over the record's fields in declaration order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, f := range r.schema.Fields() {
			if !yield(f.Name, r.values[i]) {
				return
			}
		}
	}
}

// decodeState is the root of everything one load allocates: the cursor,
// the records under construction, and the scalar values copied out of
// lines. It is dropped wholesale when the load returns, so no per-node
// teardown is needed.
type decodeState struct {
	cursor *lineCursor
	obs    Observer
}

// walk decodes one record at the given nesting depth, dispatching each
// schema field in declaration order. The document is positional: the
// next lines must be the next field, whatever their keys say.
func (st *decodeState) walk(s *schema.Schema, depth int) (*Record, error) {
	rec := &Record{schema: s, values: make([]any, s.Len())}
	for i := range s.Fields() {
		f := &s.Fields()[i]
		if st.obs != nil {
			st.obs.Field(f.Name, f.Kind, depth)
		}
		v, err := st.decodeField(f, depth)
		if err != nil {
			return nil, err
		}
		rec.values[i] = v
	}
	return rec, nil
}

func (st *decodeState) decodeField(f *schema.Field, depth int) (any, error) {
	switch f.Kind {
	case schema.Int, schema.Uint, schema.Float, schema.String:
		expr, err := st.nextExpression(f, depth)
		if err != nil {
			return nil, err
		}
		return decodeScalar(f, expr)
	case schema.StringSeq:
		return st.decodeSequence(f, depth)
	case schema.Record:
		return st.decodeRecord(f, depth)
	default:
		return nil, &UnsupportedKindError{Field: f.Name, Type: f.GoType()}
	}
}

// nextExpression reads and tokenizes the one line a scalar or introducer
// field occupies.
func (st *decodeState) nextExpression(f *schema.Field, depth int) (expression, error) {
	l, err := st.cursor.next()
	if err != nil {
		return expression{}, err
	}
	if l == nil {
		return expression{}, fmt.Errorf("%w: expected field %s", ErrUnexpectedEndOfInput, f.Name)
	}
	return splitExpression(l, depth*indentWidth)
}

func decodeScalar(f *schema.Field, expr expression) (any, error) {
	switch f.Kind {
	case schema.Int:
		n, err := strconv.ParseInt(expr.value, 10, f.Bits)
		if err != nil {
			return nil, &NumericParseError{Lno: expr.src.lno, Field: f.Name, Text: expr.value, Bits: f.Bits, err: err}
		}
		return n, nil
	case schema.Uint:
		n, err := strconv.ParseUint(expr.value, 10, f.Bits)
		if err != nil {
			return nil, &NumericParseError{Lno: expr.src.lno, Field: f.Name, Text: expr.value, Bits: f.Bits, err: err}
		}
		return n, nil
	case schema.Float:
		n, err := strconv.ParseFloat(expr.value, f.Bits)
		if err != nil {
			return nil, &NumericParseError{Lno: expr.src.lno, Field: f.Name, Text: expr.value, Bits: f.Bits, err: err}
		}
		return n, nil
	case schema.String:
		// verbatim: no quote stripping, no escapes
		return expr.value, nil
	default:
		panic(fmt.Sprintf("decodeScalar called for %s field", f.Kind))
	}
}

// decodeSequence consumes the introducer line and then every item line
// below it. Items carry the introducer's indent plus one level of
// indentation and a "- " marker. The first line without the item indent
// belongs to an outer scope and is pushed back; end of input simply ends
// the block. A sequence may be empty.
func (st *decodeState) decodeSequence(f *schema.Field, depth int) ([]string, error) {
	if _, err := st.nextExpression(f, depth); err != nil {
		return nil, err
	}
	itemIndent := strings.Repeat(" ", (depth+1)*indentWidth)
	items := []string{}
	for {
		l, err := st.cursor.next()
		if err != nil {
			return nil, err
		}
		if l == nil {
			return items, nil
		}
		rest, ok := strings.CutPrefix(l.text, itemIndent)
		if !ok {
			st.cursor.pushback(l)
			return items, nil
		}
		item, ok := strings.CutPrefix(rest, "- ")
		if !ok {
			if rest == "-" {
				item = ""
			} else {
				return nil, &MalformedLineError{Lno: l.lno, Line: l.text, Reason: `sequence item missing "- " marker`}
			}
		}
		items = append(items, item)
	}
}

// decodeRecord consumes the introducer line and delegates to the walker
// one level deeper. The nested walk consumes exactly the lines its own
// fields need, so no end-of-record scan is required; the cursor comes
// back positioned at the first line outside the nested record.
func (st *decodeState) decodeRecord(f *schema.Field, depth int) (*Record, error) {
	if _, err := st.nextExpression(f, depth); err != nil {
		return nil, err
	}
	return st.walk(f.Elem, depth+1)
}
