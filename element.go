package tagger

import (
	"fmt"
	"io"
)

// Element is one open element of a document. It owes exactly one end tag,
// written by [Element.End] (or by [Element.Build], which calls End for
// you). Only the innermost open element of a document may be written to.
//
// Go has no destructors, so an element that is never ended is detected the
// next time one of its ancestors is used, or when the document root is
// ended. Either way it panics with an error wrapping [ErrProtocol]. The
// checks are waived once the document has failed: a failed write or a
// failed Build body is reported by every later call instead.
type Element struct {
	d     *doc
	tag   string
	depth int

	closed bool

	// nested is set once the element has element children, so its end
	// tag goes on its own line when indenting.
	nested bool
}

// New starts a document on w and returns its root handle. The root has no
// tag of its own: calling End on it checks that every element was ended
// and flushes w if it has a Flush() error method.
func New(w io.Writer, opts ...Option) *Element {
	d := newDoc(w, opts)
	root := &Element{d: d}
	d.open = append(d.open, root)
	return root
}

// Tag returns the element's tag name. It is empty for the document root.
func (e *Element) Tag() string { return e.tag }

// Depth returns the nesting level. The document root is at depth 0.
func (e *Element) Depth() int { return e.depth }

// String returns the start tag without attributes, or "document" for the
// root.
func (e *Element) String() string {
	if e.depth == 0 {
		return "document"
	}
	return "<" + e.tag + ">"
}

// Start writes "<tag" and returns the attribute writer for the new child.
// The child exists once [Attrs.Open] returns; [Attrs.Empty] and
// [Attrs.Void] finish it without content.
func (e *Element) Start(tag string) *Attrs {
	d := e.d
	a := &Attrs{d: d, parent: e, tag: tag}
	if err := d.enter(e, "Start"); err != nil {
		return a
	}
	if tag == "" {
		panic(protocolf("empty tag name in %s", e))
	}
	d.lineBreak(e.depth)
	d.out.WriteString("<")
	d.out.WriteString(tag)
	d.attrs = a
	e.nested = true
	return a
}

// Single writes a self-closing child: "<tag" attributes "/>".
// attrs may be nil.
func (e *Element) Single(tag string, attrs func(a *Attrs)) error {
	a := e.Start(tag)
	if attrs != nil {
		attrs(a)
	}
	return a.Empty()
}

// Elem writes a child element with the given attributes, runs body on it
// and ends it. attrs and body may be nil.
func (e *Element) Elem(tag string, attrs func(a *Attrs), body func(e *Element) error) error {
	a := e.Start(tag)
	if attrs != nil {
		attrs(a)
	}
	child, err := a.Open()
	if err != nil {
		return err
	}
	if body == nil {
		return child.End()
	}
	return child.Build(body)
}

// Build runs body and then ends e. If body fails the document is marked
// failed, e is left open and the error is returned unchanged.
func (e *Element) Build(body func(e *Element) error) error {
	if err := body(e); err != nil {
		e.d.fail(err)
		return err
	}
	return e.End()
}

// Text writes v as escaped element content.
func (e *Element) Text(v any) error {
	d := e.d
	if err := d.enter(e, "Text"); err != nil {
		return err
	}
	writeValue(&d.esc, v)
	return d.out.err
}

// Textf formats according to a format specifier and writes the result as
// escaped element content.
func (e *Element) Textf(format string, args ...any) error {
	d := e.d
	if err := d.enter(e, "Textf"); err != nil {
		return err
	}
	fmt.Fprintf(&d.esc, format, args...)
	return d.out.err
}

// Raw writes v as content without escaping. The caller is responsible for
// v being well formed, e.g. a fragment rendered by another document.
func (e *Element) Raw(v any) error {
	d := e.d
	if err := d.enter(e, "Raw"); err != nil {
		return err
	}
	writeValue(&d.out, v)
	return d.out.err
}

// Comment writes "<!-- v -->" with v escaped.
func (e *Element) Comment(v any) error {
	d := e.d
	if err := d.enter(e, "Comment"); err != nil {
		return err
	}
	d.lineBreak(e.depth)
	d.out.WriteString("<!-- ")
	writeValue(&d.esc, v)
	d.out.WriteString(" -->")
	e.nested = true
	return d.out.err
}

// Declaration writes "<!name v>" without escaping v, e.g.
//
//	root.Declaration("DOCTYPE", "html")
func (e *Element) Declaration(name string, v any) error {
	d := e.d
	if err := d.enter(e, "Declaration"); err != nil {
		return err
	}
	d.lineBreak(e.depth)
	d.out.WriteString("<!")
	d.out.WriteString(name)
	d.out.WriteString(" ")
	writeValue(&d.out, v)
	d.out.WriteString(">")
	e.nested = true
	return d.out.err
}

// Prolog writes a processing instruction such as
//
//	<?xml version="1.0" encoding="UTF-8"?>
//
// The attributes are written by attrs, which may be nil. attrs must not
// call Open, Empty or Void.
func (e *Element) Prolog(target string, attrs func(a *Attrs)) error {
	d := e.d
	a := &Attrs{d: d, parent: e, tag: "?" + target, pi: true}
	if err := d.enter(e, "Prolog"); err != nil {
		return err
	}
	d.lineBreak(e.depth)
	d.out.WriteString("<?")
	d.out.WriteString(target)
	d.attrs = a
	if attrs != nil {
		attrs(a)
	}
	if !a.enter("Prolog") {
		return d.out.err
	}
	a.finish("?>")
	e.nested = true
	return d.out.err
}

// End writes "</tag>" and invalidates e. Any later use of e panics.
// Ending the document root writes nothing; it checks that no element is
// left open and flushes the sink.
func (e *Element) End() error {
	d := e.d
	if err := d.enter(e, "End"); err != nil {
		return err
	}
	e.closed = true
	d.open = d.open[:len(d.open)-1]
	if e.depth == 0 {
		if d.cfg.indent != "" && d.out.n > 0 {
			d.out.WriteString(d.cfg.newline)
		}
		if f, ok := d.out.w.(flusher); ok && d.out.err == nil {
			d.fail(f.Flush())
		}
		return d.out.err
	}
	if e.nested {
		d.lineBreak(e.depth - 1)
	}
	d.out.WriteString("</")
	d.out.WriteString(e.tag)
	d.out.WriteString(">")
	return d.out.err
}
