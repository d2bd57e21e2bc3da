package ymlz

import "github.com/fuad-daoud/ymlz/schema"

// An Observer receives trace events from a decode. It exists so that
// debug tracing lives outside the decode paths; a nil observer costs a
// nil check per event and nothing else.
//
// Observers must not retain the text they are handed beyond the call.
type Observer interface {
	// ReadLine is called for every line the cursor reads from the
	// source, with its 1-based line number.
	ReadLine(lno int, text string)

	// Pushback is called when a block decoder returns a line to the
	// cursor after looking past the end of its block.
	Pushback(lno int)

	// Field is called before each schema field is decoded.
	Field(name string, kind schema.Kind, depth int)
}
