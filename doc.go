// Package ymlz loads configuration from a small, line-oriented subset of
// block-style YAML into statically known Go values.
//
// The subset is deliberately restricted: scalars, sequences of strings,
// and nested records, written one field per line with two-space
// indentation. There are no comments, no quoting or escapes, no flow
// collections, no anchors, and no multi-document streams.
//
//	id: 10
//	name: hello
//	tags:
//	  - alpha
//	  - beta
//	server:
//	  host: localhost
//	  port: 8080
//
// Unlike a general YAML decoder, ymlz is positional: the document's
// fields must appear in exactly the order the destination declares them.
// Keys are never searched for, and no field is optional. This keeps the
// decoder a single forward pass with one line of lookahead, which is
// what makes the format cheap to parse and trivial to audit.
//
// The document above can be loaded into:
//
//	type Config struct {
//	  ID     int64    `ymlz:"id"`
//	  Name   string   `ymlz:"name"`
//	  Tags   []string `ymlz:"tags"`
//	  Server Server   `ymlz:"server"`
//	}
//
//	cfg, err := ymlz.LoadFile[Config]("config.yz")
//
// Field names come from a `ymlz:"name"` tag, then a `json:"name"` tag,
// and finally the snake_case form of the Go field name; the names are
// used for error messages and [Record] access, never for matching
// against the document.
//
// Callers that do not have a compiled destination type can describe the
// expected shape with the [schema] package and receive a [Record]
// instead.
//
// A load either returns a fully populated value or a typed error; a
// partially decoded value is never exposed.
package ymlz
