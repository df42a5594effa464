package tagger

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrProtocol is wrapped by the value of every panic raised for a broken
	// open/close discipline: an element that was never ended, an element used
	// after End, a builder finished twice, a pop from an empty stack.
	ErrProtocol = errors.New("protocol violation")

	// ErrMissingInterface is returned when items lack an interface a
	// helper requires, e.g. Rower for Table.
	ErrMissingInterface = errors.New("missing required interface")

	// ErrInvalidPath is returned by ParsePathCommand.
	ErrInvalidPath = errors.New("invalid path command")
)

func protocolf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProtocol}, args...)...)
}

// Option configures a document.
type Option func(*config)

type config struct {
	indent  string
	newline string
}

// WithIndent puts every start tag on its own line, indented by one copy of
// indent per nesting level. The end tag of an element that has element
// children is indented the same way. Text content is never reflowed.
// Default: no whitespace is added to the output.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

// WithNewline sets the line terminator used together with [WithIndent].
// Default: "\n".
func WithNewline(nl string) Option {
	return func(c *config) {
		c.newline = nl
	}
}

// sink passes writes through to w until the first failure. The failure is
// kept and returned from every later write without touching w again.
type sink struct {
	w   io.Writer
	n   int64
	err error
}

func (s *sink) WriteString(str string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := io.WriteString(s.w, str)
	s.n += int64(n)
	if err != nil {
		s.err = err
	}
	return n, err
}

func (s *sink) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err != nil {
		s.err = err
	}
	return n, err
}

type flusher interface {
	Flush() error
}

// doc is the state shared by every handle of one document.
type doc struct {
	out sink
	esc escaper
	cfg config

	// open holds the handles that still owe an end tag, innermost last.
	// The root handle is always open[0] until the document is ended.
	open []*Element

	// attrs is the start tag currently being written, if any.
	attrs *Attrs

	// value names the composite attribute value currently being written.
	value string
}

func newDoc(w io.Writer, opts []Option) *doc {
	d := &doc{
		cfg: config{newline: "\n"},
	}
	for _, o := range opts {
		o(&d.cfg)
	}
	d.out.w = w
	d.esc.w = &d.out
	return d
}

// fail marks the document as failed. Only the first error is kept.
func (d *doc) fail(err error) {
	if d.out.err == nil {
		d.out.err = err
	}
}

func (d *doc) failed() bool {
	return d.out.err != nil
}

// enter checks that e is the innermost open handle and that no start tag is
// in progress. Once the document has failed the checks are waived and the
// failure is returned instead.
func (d *doc) enter(e *Element, op string) error {
	if d.out.err != nil {
		return d.out.err
	}
	if e.closed {
		panic(protocolf("%s on ended element %s", op, e))
	}
	if d.attrs != nil {
		panic(protocolf("%s on %s while start tag <%s> is unfinished", op, e, d.attrs.tag))
	}
	if d.open[len(d.open)-1] != e {
		panic(protocolf("%s on %s while %s not ended", op, e, openTags(d.open[e.depth+1:])))
	}
	return nil
}

// lineBreak starts a new line at the given nesting level when indentation
// is enabled and something has already been written.
func (d *doc) lineBreak(level int) {
	if d.cfg.indent == "" || d.out.n == 0 {
		return
	}
	d.out.WriteString(d.cfg.newline)
	for range level {
		d.out.WriteString(d.cfg.indent)
	}
}

// writeValue formats v into w the way fmt.Print would.
func writeValue(w io.Writer, v any) {
	switch v := v.(type) {
	case string:
		io.WriteString(w, v)
	case []byte:
		w.Write(v)
	default:
		fmt.Fprint(w, v)
	}
}

func openTags(els []*Element) string {
	tags := make([]string, len(els))
	for i, e := range els {
		tags[i] = e.String()
	}
	return strings.Join(tags, " ")
}
