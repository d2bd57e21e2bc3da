package ymlz_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/ymlz"
	"github.com/fuad-daoud/ymlz/schema"
)

func TestExample(t *testing.T) {
	type example struct {
		ID   int64  `ymlz:"id"`
		Name string `ymlz:"name"`
	}

	var got example
	err := ymlz.Unmarshal([]byte("id: 10\nname: hello\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, example{ID: 10, Name: "hello"}, got)
}

func TestScalarRoundTrip(t *testing.T) {
	type scalars struct {
		A int8    `ymlz:"a"`
		B int64   `ymlz:"b"`
		C uint16  `ymlz:"c"`
		D float32 `ymlz:"d"`
		E float64 `ymlz:"e"`
		F string  `ymlz:"f"`
		G string  `ymlz:"g"`
	}

	doc := strings.Join([]string{
		"a: -12",
		"b: 9223372036854775807",
		"c: 65535",
		"d: 1.5",
		"e: -2.25e3",
		"f: plain text with spaces",
		`g: "not unquoted"`,
	}, "\n")

	var got scalars
	require.NoError(t, ymlz.Unmarshal([]byte(doc), &got))

	assert.Equal(t, int8(-12), got.A)
	assert.Equal(t, int64(9223372036854775807), got.B)
	assert.Equal(t, uint16(65535), got.C)
	assert.Equal(t, float32(1.5), got.D)
	assert.Equal(t, -2250.0, got.E)
	assert.Equal(t, "plain text with spaces", got.F)
	// no quote stripping, no escapes
	assert.Equal(t, `"not unquoted"`, got.G)
}

func TestSequenceOrderingAndBoundary(t *testing.T) {
	type doc struct {
		Tags []string `ymlz:"tags"`
		Next int32    `ymlz:"next"`
	}

	var got doc
	err := ymlz.Unmarshal([]byte("tags:\n  - a\n  - b\nnext: 7\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	// the sibling after the block proves the boundary line was pushed back
	assert.Equal(t, int32(7), got.Next)
}

func TestEmptySequence(t *testing.T) {
	t.Run("terminated by end of input", func(t *testing.T) {
		type doc struct {
			Tags []string `ymlz:"tags"`
		}
		var got doc
		require.NoError(t, ymlz.Unmarshal([]byte("tags:\n"), &got))
		assert.Empty(t, got.Tags)
	})

	t.Run("terminated by sibling", func(t *testing.T) {
		type doc struct {
			Tags []string `ymlz:"tags"`
			N    int64    `ymlz:"n"`
		}
		var got doc
		require.NoError(t, ymlz.Unmarshal([]byte("tags:\nn: 1\n"), &got))
		assert.Empty(t, got.Tags)
		assert.Equal(t, int64(1), got.N)
	})
}

func TestSequenceItems(t *testing.T) {
	type doc struct {
		Items []string `ymlz:"items"`
	}

	t.Run("empty item", func(t *testing.T) {
		var got doc
		require.NoError(t, ymlz.Unmarshal([]byte("items:\n  -\n  - x\n"), &got))
		assert.Equal(t, []string{"", "x"}, got.Items)
	})

	t.Run("missing marker", func(t *testing.T) {
		var got doc
		err := ymlz.Unmarshal([]byte("items:\n  x\n"), &got)
		var mle *ymlz.MalformedLineError
		require.ErrorAs(t, err, &mle)
		assert.Equal(t, 2, mle.Lno)
	})
}

func TestNestedRecordDepthRestoration(t *testing.T) {
	type inner struct {
		A int64 `ymlz:"a"`
	}
	type outer struct {
		Inner inner `ymlz:"inner"`
		B     int64 `ymlz:"b"`
	}

	var got outer
	err := ymlz.Unmarshal([]byte("inner:\n  a: 1\nb: 2\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Inner.A)
	// depth used inside the record must not leak into the sibling
	assert.Equal(t, int64(2), got.B)
}

func TestDeeplyNested(t *testing.T) {
	type level2 struct {
		Leaf string `ymlz:"leaf"`
	}
	type level1 struct {
		Two  level2   `ymlz:"two"`
		Tags []string `ymlz:"tags"`
	}
	type root struct {
		One   level1 `ymlz:"one"`
		After string `ymlz:"after"`
	}

	doc := strings.Join([]string{
		"one:",
		"  two:",
		"    leaf: deep",
		"  tags:",
		"    - x",
		"    - y",
		"after: done",
	}, "\n")

	var got root
	require.NoError(t, ymlz.Unmarshal([]byte(doc), &got))
	assert.Equal(t, "deep", got.One.Two.Leaf)
	assert.Equal(t, []string{"x", "y"}, got.One.Tags)
	assert.Equal(t, "done", got.After)
}

func TestNumericRejection(t *testing.T) {
	type doc struct {
		N int64 `ymlz:"n"`
	}

	cases := []struct {
		name  string
		input string
	}{
		{"letters", "n: abc\n"},
		{"trailing junk", "n: 12x\n"},
		{"empty", "n:\n"},
		{"float for int", "n: 1.5\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got doc
			err := ymlz.Unmarshal([]byte(tc.input), &got)
			var npe *ymlz.NumericParseError
			require.ErrorAs(t, err, &npe)
			assert.Equal(t, "n", npe.Field)
			// never silently zero
			assert.Zero(t, got.N)
		})
	}
}

func TestNumericOverflow(t *testing.T) {
	type doc struct {
		N int8 `ymlz:"n"`
	}
	var got doc
	err := ymlz.Unmarshal([]byte("n: 300\n"), &got)
	var npe *ymlz.NumericParseError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "300", npe.Text)
	assert.Equal(t, 8, npe.Bits)
}

func TestExhaustion(t *testing.T) {
	type doc struct {
		A int64  `ymlz:"a"`
		B string `ymlz:"b"`
	}

	t.Run("document too short", func(t *testing.T) {
		var got doc
		err := ymlz.Unmarshal([]byte("a: 1\n"), &got)
		require.ErrorIs(t, err, ymlz.ErrUnexpectedEndOfInput)
		assert.Contains(t, err.Error(), "b")
	})

	t.Run("exactly satisfied without trailing newline", func(t *testing.T) {
		var got doc
		require.NoError(t, ymlz.Unmarshal([]byte("a: 1\nb: hi"), &got))
		assert.Equal(t, doc{A: 1, B: "hi"}, got)
	})
}

func TestUnsupportedKind(t *testing.T) {
	type doc struct {
		A int64 `ymlz:"a"`
		B bool  `ymlz:"b"`
	}
	var got doc
	err := ymlz.Unmarshal([]byte("a: 1\nb: true\n"), &got)
	var uke *ymlz.UnsupportedKindError
	require.ErrorAs(t, err, &uke)
	assert.Equal(t, "b", uke.Field)
	// all-or-nothing: the earlier field must not leak out
	assert.Zero(t, got.A)
}

func TestUnmarshalTarget(t *testing.T) {
	type doc struct {
		A int64 `ymlz:"a"`
	}
	assert.Error(t, ymlz.Unmarshal([]byte("a: 1\n"), doc{}))
	assert.Error(t, ymlz.Unmarshal([]byte("a: 1\n"), (*doc)(nil)))
}

func TestFieldNaming(t *testing.T) {
	type doc struct {
		TaggedYmlz string `ymlz:"one"`
		TaggedJSON string `json:"two"`
		SnakeCased string
		Skipped    string `ymlz:"-"`
		unexported string
	}

	var got doc
	err := ymlz.Unmarshal([]byte("one: a\ntwo: b\nsnake_cased: c\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, "a", got.TaggedYmlz)
	assert.Equal(t, "b", got.TaggedJSON)
	assert.Equal(t, "c", got.SnakeCased)
	assert.Empty(t, got.Skipped)
	assert.Empty(t, got.unexported)
}

func TestLoadFile(t *testing.T) {
	type config struct {
		ID   int64  `ymlz:"id"`
		Name string `ymlz:"name"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yz")
	require.NoError(t, os.WriteFile(path, []byte("id: 10\nname: hello\n"), 0o600))

	got, err := ymlz.LoadFile[config](path)
	require.NoError(t, err)
	assert.Equal(t, config{ID: 10, Name: "hello"}, got)

	_, err = ymlz.LoadFile[config](filepath.Join(dir, "missing.yz"))
	require.ErrorIs(t, err, ymlz.ErrSourceUnavailable)
}

func TestDecoderClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yz")
	require.NoError(t, os.WriteFile(path, []byte("id: 10\n"), 0o600))

	d, err := ymlz.Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}

func TestDecodeDynamicSchema(t *testing.T) {
	inner, err := schema.New(
		schema.Field{Name: "host", Kind: schema.String},
		schema.Field{Name: "port", Kind: schema.Uint, Bits: 16},
	)
	require.NoError(t, err)
	s, err := schema.New(
		schema.Field{Name: "id", Kind: schema.Int, Bits: 64},
		schema.Field{Name: "tags", Kind: schema.StringSeq},
		schema.Field{Name: "server", Kind: schema.Record, Elem: inner},
	)
	require.NoError(t, err)

	doc := "id: 42\ntags:\n  - a\nserver:\n  host: localhost\n  port: 8080\n"
	d := ymlz.NewDecoder(strings.NewReader(doc))
	defer d.Close()

	rec, err := d.Decode(s)
	require.NoError(t, err)

	id, ok := rec.Get("id")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	tags, _ := rec.Get("tags")
	assert.Equal(t, []string{"a"}, tags)

	server, _ := rec.Get("server")
	sub, ok := server.(*ymlz.Record)
	require.True(t, ok)
	port, _ := sub.Get("port")
	assert.Equal(t, uint64(8080), port)

	names := []string{}
	for name := range rec.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"id", "tags", "server"}, names)
}

type recordingObserver struct {
	reads     int
	pushbacks int
	fields    []string
}

func (o *recordingObserver) ReadLine(lno int, text string) { o.reads++ }
func (o *recordingObserver) Pushback(lno int)              { o.pushbacks++ }
func (o *recordingObserver) Field(name string, kind schema.Kind, depth int) {
	o.fields = append(o.fields, name)
}

func TestObserver(t *testing.T) {
	type doc struct {
		Tags []string `ymlz:"tags"`
		N    int64    `ymlz:"n"`
	}

	obs := &recordingObserver{}
	d := ymlz.NewDecoder(strings.NewReader("tags:\n  - a\nn: 1\n"))
	d.SetObserver(obs)

	got, err := ymlz.Load[doc](d)
	require.NoError(t, err)
	assert.Equal(t, doc{Tags: []string{"a"}, N: 1}, got)

	assert.Equal(t, []string{"tags", "n"}, obs.fields)
	assert.Equal(t, 3, obs.reads)
	// the sequence looked one line past its block and returned it
	assert.Equal(t, 1, obs.pushbacks)
}
