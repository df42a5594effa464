package tagger

import (
	"io"
	"strings"
)

// entities is the fixed substitution table applied to escaped text.
var entities = [256]string{
	'"':  "&quot;",
	'\'': "&apos;",
	'<':  "&lt;",
	'>':  "&gt;",
	'&':  "&amp;",
}

// EscapeString replaces the characters " ' < > & with their entity
// equivalents. All other characters are returned unchanged.
func EscapeString(s string) string {
	i := nextSpecial(s)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i >= 0 {
		b.WriteString(s[:i])
		b.WriteString(entities[s[i]])
		s = s[i+1:]
		i = nextSpecial(s)
	}
	b.WriteString(s)
	return b.String()
}

func nextSpecial(s string) int {
	return strings.IndexAny(s, `"'<>&`)
}

// NewEscaper returns a writer that escapes everything written through it
// before passing it on to w. Write errors from w are returned as-is.
func NewEscaper(w io.Writer) io.Writer {
	return &escaper{w: w}
}

type escaper struct {
	w io.Writer
}

// WriteString writes s in runs between special characters.
func (e *escaper) WriteString(s string) (int, error) {
	n := 0
	for len(s) > 0 {
		i := nextSpecial(s)
		if i < 0 {
			m, err := io.WriteString(e.w, s)
			return n + m, err
		}
		if i > 0 {
			m, err := io.WriteString(e.w, s[:i])
			n += m
			if err != nil {
				return n, err
			}
		}
		if _, err := io.WriteString(e.w, entities[s[i]]); err != nil {
			return n, err
		}
		n++
		s = s[i+1:]
	}
	return n, nil
}

func (e *escaper) Write(p []byte) (int, error) {
	return e.WriteString(string(p))
}
