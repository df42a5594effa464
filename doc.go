// Package tagger writes markup (XML, HTML, SVG) and JSON objects straight
// to an [io.Writer], without building a tree in memory and without a
// template engine.
//
// # Elements
//
// [New] returns the root handle of a document. Every element is opened in
// two phases: [Element.Start] writes "<tag" and returns an [Attrs] for the
// attribute list, and [Attrs.Open] writes ">" and returns the child
// [Element]. The child owes exactly one end tag, written by [Element.End]:
//
//	root := tagger.New(os.Stdout)
//	svg, err := root.Start("svg").
//		Attr("xmlns", "http://www.w3.org/2000/svg").
//		Attr("viewBox", "0 0 100 100").
//		Open()
//	if err != nil {
//		return err
//	}
//	if err := svg.Single("rect", func(a *tagger.Attrs) { a.Attr("style", "fill:blue") }); err != nil {
//		return err
//	}
//	if err := svg.End(); err != nil {
//		return err
//	}
//	return root.End()
//
// writes
//
//	<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><rect style="fill:blue"/></svg>
//
// [Element.Elem] and [Element.Build] take a body function and end the
// element when it returns, so the end tag cannot be forgotten:
//
//	err := root.Elem("ul", nil, func(ul *tagger.Element) error {
//		return ul.Elem("li", nil, func(li *tagger.Element) error {
//			return li.Text("one & two")
//		})
//	})
//
// # Escaping
//
// Attribute values and text go through [NewEscaper], which replaces
// " ' < > & with &quot; &apos; &lt; &gt; &amp;. [Attrs.RawAttr] and
// [Element.Raw] skip escaping for pre-rendered fragments.
//
// # SVG values
//
// [Attrs.Points] and [Attrs.Path] build composite attribute values:
//
//	a.WithPath(func(p *tagger.Path) {
//		p.Draw(tagger.MoveTo(10, 10), tagger.QuadTo(50, 0, 90, 10), tagger.ClosePath())
//	})
//
// # Stacks
//
// [Stack] keeps open elements on a heap-allocated stack for code that
// cannot nest lexically. [Stack.Finish] ends everything still open.
//
// # Errors
//
// Every write goes straight to the sink. The first failed write is kept
// and returned by that call and by every later one; nothing is retried.
// Breaking the open/close discipline (ending twice, using a parent while a
// child is open, never ending an element, popping an empty stack) is a
// programming error and panics with an error wrapping [ErrProtocol]. Once
// the document has failed those checks are waived, so the first error
// is what the caller sees.
package tagger
