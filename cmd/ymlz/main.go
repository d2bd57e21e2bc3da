// Command ymlz decodes a document against a schema descriptor and dumps
// the result. It is a thin wrapper: it opens the handle, loads, and
// reports.
//
//	ymlz --schema config.schema [--trace] config.yz
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/fuad-daoud/ymlz"
	"github.com/fuad-daoud/ymlz/schema"
)

func main() {
	schemaFile := flag.String("schema", "", "schema descriptor file to decode against")
	trace := flag.Bool("trace", false, "log decode events to stderr")
	flag.Parse()

	if *schemaFile == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ymlz --schema <descriptor> [--trace] <document>")
		os.Exit(1)
	}

	schemaBytes, err := os.ReadFile(*schemaFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading schema file: %v\n", err)
		os.Exit(1)
	}

	s, err := parseSchemaFile(schemaBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing schema: %v\n", err)
		os.Exit(1)
	}

	d, err := ymlz.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening document: %v\n", err)
		os.Exit(1)
	}
	defer d.Close()

	if *trace {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
		d.SetObserver(&traceObserver{log: log})
	}

	rec, err := d.Decode(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding document: %v\n", err)
		os.Exit(1)
	}

	spew.Dump(recordToMap(rec))
}

func recordToMap(rec *ymlz.Record) map[string]any {
	out := make(map[string]any, rec.Len())
	for name, value := range rec.All() {
		if sub, ok := value.(*ymlz.Record); ok {
			out[name] = recordToMap(sub)
			continue
		}
		out[name] = value
	}
	return out
}

// traceObserver forwards decode events to a zerolog logger.
type traceObserver struct {
	log zerolog.Logger
}

func (t *traceObserver) ReadLine(lno int, text string) {
	t.log.Debug().Int("lno", lno).Str("text", text).Msg("read line")
}

func (t *traceObserver) Pushback(lno int) {
	t.log.Debug().Int("lno", lno).Msg("pushback")
}

func (t *traceObserver) Field(name string, kind schema.Kind, depth int) {
	t.log.Debug().Str("field", name).Stringer("kind", kind).Int("depth", depth).Msg("decode field")
}
