package ymlz

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A line is one line of the source with its delimiter stripped. It is
// valid until the next read, or until it is pushed back.
type line struct {
	text string
	lno  int
}

// lineCursor owns the read position in the source. It exposes exactly
// two operations, next and pushback, so that block decoders can look one
// line past their own content and hand the line back for the next
// consumer. The pushback slot replaces the offset arithmetic a seekable
// source would need.
type lineCursor struct {
	r        *bufio.Reader
	lno      int
	pushed   *line
	readable bool // a pushback is only legal directly after a next
	obs      Observer
}

func newLineCursor(r io.Reader, obs Observer) *lineCursor {
	return &lineCursor{r: bufio.NewReader(r), obs: obs}
}

// next returns the next line of the source. At end of input it returns
// nil with a nil error; I/O failures are returned as-is.
func (c *lineCursor) next() (*line, error) {
	if l := c.pushed; l != nil {
		c.pushed = nil
		c.readable = true
		return l, nil
	}
	text, err := c.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	if text == "" && err == io.EOF {
		c.readable = false
		return nil, nil
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	c.lno++
	c.readable = true
	l := &line{text: text, lno: c.lno}
	if c.obs != nil {
		c.obs.ReadLine(l.lno, l.text)
	}
	return l, nil
}

// pushback un-consumes the most recently returned line. Calling it twice
// in a row, or before any read, is a bug in the decoder and panics with
// a [CursorProtocolError].
func (c *lineCursor) pushback(l *line) {
	if !c.readable || c.pushed != nil {
		panic(&CursorProtocolError{Op: "pushback without a preceding read"})
	}
	c.pushed = l
	c.readable = false
	if c.obs != nil {
		c.obs.Pushback(l.lno)
	}
}
