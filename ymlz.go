package ymlz

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/fuad-daoud/ymlz/schema"
)

// A Decoder is a handle on one source. A handle supports a single load;
// the source is acquired when the handle is constructed and released by
// [Decoder.Close], which is idempotent and must be called regardless of
// whether the load succeeded.
//
// A Decoder is not safe for concurrent use, but independent decoders
// share no state.
type Decoder struct {
	src    io.Reader
	closer io.Closer
	obs    Observer
	closed bool
}

// Open constructs a decoder reading from the named file. It fails with
// an error matching [ErrSourceUnavailable] if the file cannot be opened.
func Open(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &Decoder{src: f, closer: f}, nil
}

// NewDecoder constructs a decoder reading from r. If r is an
// [io.Closer], Close releases it.
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{src: r}
	if c, ok := r.(io.Closer); ok {
		d.closer = c
	}
	return d
}

// SetObserver attaches a trace observer to subsequent loads. A nil
// observer disables tracing.
func (d *Decoder) SetObserver(obs Observer) { d.obs = obs }

// Close releases the underlying source. It is safe to call more than
// once; only the first call closes.
func (d *Decoder) Close() error {
	if d.closed || d.closer == nil {
		d.closed = true
		return nil
	}
	d.closed = true
	return d.closer.Close()
}

// Decode loads the document against a hand-built schema and returns the
// populated [Record]. It is the dynamic counterpart of [Load] for
// callers with no compiled destination type.
func (d *Decoder) Decode(s *schema.Schema) (*Record, error) {
	st := &decodeState{cursor: newLineCursor(d.src, d.obs), obs: d.obs}
	return st.walk(s, 0)
}

// Load decodes the handle's document into a freshly populated T, which
// must be a struct type. On any failure the zero T is returned; a
// partially populated value is never exposed.
func Load[T any](d *Decoder) (T, error) {
	var dest T
	s, err := schema.Of(reflect.TypeOf(dest))
	if err != nil {
		return dest, err
	}
	rec, err := d.Decode(s)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := bind(rec, reflect.ValueOf(&dest).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return dest, nil
}

// LoadFile opens the named file, decodes it into a T, and releases the
// file on every path.
func LoadFile[T any](path string) (T, error) {
	d, err := Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer d.Close()
	return Load[T](d)
}

// Unmarshal decodes an in-memory document into the value pointed to by
// v, which must be a non-nil pointer to a struct. It is equivalent to
// loading through a [Decoder] over a bytes reader.
func Unmarshal(data []byte, v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer to a struct")
	}
	elem := value.Elem()
	s, err := schema.Of(elem.Type())
	if err != nil {
		return err
	}
	st := &decodeState{cursor: newLineCursor(bytes.NewReader(data), nil)}
	rec, err := st.walk(s, 0)
	if err != nil {
		return err
	}
	return bind(rec, elem)
}

// bind copies a fully decoded record into a struct value using the
// field indexes recorded by [schema.Of]. Decode failures cannot reach
// here, so bind only translates value shapes.
func bind(rec *Record, v reflect.Value) error {
	fields := rec.Schema().Fields()
	for i := range fields {
		f := &fields[i]
		fv := v.Field(f.Index())
		switch f.Kind {
		case schema.Int:
			fv.SetInt(rec.values[i].(int64))
		case schema.Uint:
			fv.SetUint(rec.values[i].(uint64))
		case schema.Float:
			fv.SetFloat(rec.values[i].(float64))
		case schema.String:
			fv.SetString(rec.values[i].(string))
		case schema.StringSeq:
			items := rec.values[i].([]string)
			sl := reflect.MakeSlice(fv.Type(), len(items), len(items))
			for j, item := range items {
				sl.Index(j).SetString(item)
			}
			fv.Set(sl)
		case schema.Record:
			if err := bind(rec.values[i].(*Record), fv); err != nil {
				return err
			}
		default:
			return &UnsupportedKindError{Field: f.Name, Type: f.GoType()}
		}
	}
	return nil
}
