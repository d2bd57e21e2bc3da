package ymlz

import "strings"

// indentWidth is the number of columns per nesting level.
const indentWidth = 2

// An expression is the transient decode of one line: the key, the raw
// value with its single leading space stripped, and the line it came
// from. It lives for the duration of one field decode.
type expression struct {
	key   string
	value string
	src   *line
}

// splitExpression strips exactly indent leading columns from the line
// and splits the remainder on the first ':'. The caller's schema context
// guarantees the indent, so a shorter line is malformed, as is a line
// with no delimiter or an empty key.
func splitExpression(l *line, indent int) (expression, error) {
	if len(l.text) < indent {
		return expression{}, &MalformedLineError{Lno: l.lno, Line: l.text, Reason: "line shorter than expected indent"}
	}
	rest := l.text[indent:]
	key, value, found := strings.Cut(rest, ":")
	if !found {
		return expression{}, &MalformedLineError{Lno: l.lno, Line: l.text, Reason: "missing ':' delimiter"}
	}
	if key == "" {
		return expression{}, &MalformedLineError{Lno: l.lno, Line: l.text, Reason: "empty key"}
	}
	value = strings.TrimPrefix(value, " ")
	return expression{key: key, value: value, src: l}, nil
}
