package tagger

import (
	"fmt"
	"io"
)

// Attrs writes the attribute list of a start tag. It exists between
// [Element.Start] and one of its terminal calls: [Attrs.Open],
// [Attrs.Empty] or [Attrs.Void]. Nothing else may be written to the
// document in between.
//
// Attribute methods chain. A write failure is kept by the document and
// returned by the terminal call.
type Attrs struct {
	d      *doc
	parent *Element
	tag    string
	done   bool

	// pi marks the attributes of a processing instruction, which are
	// finished by Element.Prolog rather than by the caller.
	pi bool
}

func (a *Attrs) enter(op string) bool {
	if a.d.failed() {
		return false
	}
	if a.done {
		panic(protocolf("%s on finished start tag <%s>", op, a.tag))
	}
	if a.d.value != "" {
		panic(protocolf("%s on <%s> while %s value is unfinished", op, a.tag, a.d.value))
	}
	return true
}

func (a *Attrs) name(name string) {
	a.d.out.WriteString(" ")
	a.d.out.WriteString(name)
	a.d.out.WriteString(`="`)
}

// Attr writes name="v" with v escaped.
func (a *Attrs) Attr(name string, v any) *Attrs {
	if !a.enter("Attr") {
		return a
	}
	a.name(name)
	writeValue(&a.d.esc, v)
	a.d.out.WriteString(`"`)
	return a
}

// Attrf writes name="..." with the formatted value escaped.
func (a *Attrs) Attrf(name, format string, args ...any) *Attrs {
	if !a.enter("Attrf") {
		return a
	}
	a.name(name)
	fmt.Fprintf(&a.d.esc, format, args...)
	a.d.out.WriteString(`"`)
	return a
}

// RawAttr writes name="v" without escaping v. The caller is responsible
// for v not containing a double quote.
func (a *Attrs) RawAttr(name string, v any) *Attrs {
	if !a.enter("RawAttr") {
		return a
	}
	a.name(name)
	writeValue(&a.d.out, v)
	a.d.out.WriteString(`"`)
	return a
}

// With writes name="..." where the value is produced by fn. Everything fn
// writes to w is escaped. An error from fn fails the document.
func (a *Attrs) With(name string, fn func(w io.Writer) error) *Attrs {
	if !a.enter("With") {
		return a
	}
	a.name(name)
	if err := fn(&a.d.esc); err != nil {
		a.d.fail(err)
		return a
	}
	a.d.out.WriteString(`"`)
	return a
}

// Points starts a points="..." value. Call [Points.Finish] to return to
// the attribute list.
func (a *Attrs) Points() *Points {
	p := &Points{a: a}
	if !a.enter("Points") {
		return p
	}
	a.name("points")
	a.d.value = "points"
	return p
}

// WithPoints writes a points="..." value built by fn.
func (a *Attrs) WithPoints(fn func(p *Points)) *Attrs {
	p := a.Points()
	fn(p)
	return p.Finish()
}

// Path starts a d="..." value. Call [Path.Finish] to return to the
// attribute list.
func (a *Attrs) Path() *Path {
	p := &Path{a: a}
	if !a.enter("Path") {
		return p
	}
	a.name("d")
	a.d.value = "d"
	return p
}

// WithPath writes a d="..." value built by fn.
func (a *Attrs) WithPath(fn func(p *Path)) *Attrs {
	p := a.Path()
	fn(p)
	return p.Finish()
}

func (a *Attrs) finish(suffix string) {
	a.d.out.WriteString(suffix)
	a.done = true
	a.d.attrs = nil
}

func (a *Attrs) terminal(op string) bool {
	if !a.enter(op) {
		return false
	}
	if a.pi {
		panic(protocolf("%s on processing instruction <%s>", op, a.tag))
	}
	return true
}

// Open writes ">" and returns the new child element, which must be ended.
func (a *Attrs) Open() (*Element, error) {
	if !a.terminal("Open") {
		return nil, a.d.out.err
	}
	a.finish(">")
	if err := a.d.out.err; err != nil {
		return nil, err
	}
	child := &Element{
		d:     a.d,
		tag:   a.tag,
		depth: a.parent.depth + 1,
	}
	a.d.open = append(a.d.open, child)
	return child, nil
}

// Empty writes "/>". The element is complete; there is nothing to end.
func (a *Attrs) Empty() error {
	if !a.terminal("Empty") {
		return a.d.out.err
	}
	a.finish("/>")
	return a.d.out.err
}

// Void writes ">" and no end tag, for HTML void elements such as br or
// meta.
func (a *Attrs) Void() error {
	if !a.terminal("Void") {
		return a.d.out.err
	}
	a.finish(">")
	return a.d.out.err
}
