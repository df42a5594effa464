package tagger_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/bjaus/tagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

// failAfterN fails on the (n+1)th call to Write.
type failAfterN struct {
	n     int
	calls int
}

func (f *failAfterN) Write(p []byte) (int, error) {
	if f.calls >= f.n {
		return 0, errWriteFailed
	}
	f.calls++
	return len(p), nil
}

var errWriteFailed = errors.New("write failed")

// protocolPanic runs fn and returns the error it panicked with, if any.
func protocolPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func svgAttrs(a *tagger.Attrs) {
	a.Attr("xmlns", "http://www.w3.org/2000/svg").Attr("viewBox", "0 0 100 100")
}

// ============================================================
// Tests
// ============================================================

func TestEndToEndSVG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf)

	a := root.Start("svg")
	svgAttrs(a)
	svg, err := a.Open()
	require.NoError(t, err)
	require.NoError(t, svg.Single("rect", func(a *tagger.Attrs) { a.Attr("style", "fill:blue") }))
	require.NoError(t, svg.End())
	require.NoError(t, root.End())

	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><rect style="fill:blue"/></svg>`, buf.String())
}

func TestElemClosure(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf)
	err := root.Elem("ul", func(a *tagger.Attrs) { a.Attr("class", "list") }, func(ul *tagger.Element) error {
		for _, item := range []string{"one", "two & three"} {
			if err := ul.Elem("li", nil, func(li *tagger.Element) error {
				return li.Text(item)
			}); err != nil {
				return err
			}
		}
		return ul.Elem("li", nil, nil)
	})
	require.NoError(t, err)
	require.NoError(t, root.End())
	assert.Equal(t, `<ul class="list"><li>one</li><li>two &amp; three</li><li></li></ul>`, buf.String())
}

func TestNestingIsBalanced(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf)
	var open func(e *tagger.Element, depth int) error
	open = func(e *tagger.Element, depth int) error {
		if depth == 0 {
			return e.Text(depth)
		}
		return e.Elem("d", func(a *tagger.Attrs) { a.Attr("n", depth) }, func(c *tagger.Element) error {
			return open(c, depth-1)
		})
	}
	require.NoError(t, open(root, 200))
	require.NoError(t, root.End())

	out := buf.String()
	assert.Equal(t, 200, strings.Count(out, "<d "))
	assert.Equal(t, 200, strings.Count(out, "</d>"))
	assert.True(t, strings.HasPrefix(out, `<d n="200"><d n="199">`))
	assert.True(t, strings.HasSuffix(out, `<d n="1">0</d></d></d>`))
}

func TestEscapeString(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":        {input: "", want: ""},
		"plain":        {input: "fill:blue; x=1", want: "fill:blue; x=1"},
		"all specials": {input: `"'<>&`, want: "&quot;&apos;&lt;&gt;&amp;"},
		"mixed":        {input: `a < b && c > "d"`, want: "a &lt; b &amp;&amp; c &gt; &quot;d&quot;"},
		"entity again": {input: "&amp;", want: "&amp;amp;"},
		"unicode":      {input: "naïve <ü>", want: "naïve &lt;ü&gt;"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tagger.EscapeString(tc.input))

			var buf bytes.Buffer
			_, err := io.WriteString(tagger.NewEscaper(&buf), tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, buf.String())
			assert.NotContains(t, strings.NewReplacer("&quot;", "", "&apos;", "", "&lt;", "", "&gt;", "", "&amp;", "").Replace(buf.String()), "<")
		})
	}
}

func TestEscaperWriteError(t *testing.T) {
	t.Parallel()
	_, err := tagger.NewEscaper(&errWriter{}).Write([]byte("a<b"))
	assert.ErrorIs(t, err, errWriteFailed)
}

func TestSingleHasNoContent(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`^<img( [a-z]+="[^"]*")*/>$`)
	tests := map[string]func(a *tagger.Attrs){
		"nil attrs": nil,
		"one attr":  func(a *tagger.Attrs) { a.Attr("src", "a.png") },
		"escaped":   func(a *tagger.Attrs) { a.Attr("alt", `"quoted" <b>`).Attr("width", 10) },
	}
	for name, attrs := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			root := tagger.New(&buf)
			require.NoError(t, root.Single("img", attrs))
			require.NoError(t, root.End())
			assert.Regexp(t, re, buf.String())
		})
	}
}

func TestAttrVariants(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf)
	err := root.Single("a", func(a *tagger.Attrs) {
		a.Attrf("viewBox", "0 0 %d %d", 500, 400).
			RawAttr("data-raw", "<b>").
			With("title", func(w io.Writer) error {
				_, err := io.WriteString(w, `say "hi"`)
				return err
			})
	})
	require.NoError(t, err)
	require.NoError(t, root.End())
	assert.Equal(t, `<a viewBox="0 0 500 400" data-raw="<b>" title="say &quot;hi&quot;"/>`, buf.String())
}

func TestWithError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	errValue := errors.New("no value")
	root := tagger.New(&buf)
	a := root.Start("a").With("href", func(io.Writer) error { return errValue })
	_, err := a.Open()
	assert.ErrorIs(t, err, errValue)
	assert.ErrorIs(t, root.End(), errValue)
}

func TestContent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf)
	require.NoError(t, root.Prolog("xml", func(a *tagger.Attrs) {
		a.Attr("version", "1.0").Attr("encoding", "UTF-8")
	}))
	require.NoError(t, root.Declaration("DOCTYPE", "html"))
	require.NoError(t, root.Comment("a < b"))
	require.NoError(t, root.Elem("p", nil, func(p *tagger.Element) error {
		if err := p.Textf("%d < %s", 1, "two"); err != nil {
			return err
		}
		if err := p.Start("br").Void(); err != nil {
			return err
		}
		return p.Raw("<em>ok</em>")
	}))
	require.NoError(t, root.End())
	assert.Equal(t,
		`<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE html><!-- a &lt; b --><p>1 &lt; two<br><em>ok</em></p>`,
		buf.String())
}

func TestIndent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf, tagger.WithIndent("  "))
	err := root.Elem("a", nil, func(a *tagger.Element) error {
		if err := a.Elem("b", nil, func(b *tagger.Element) error { return b.Text("x") }); err != nil {
			return err
		}
		return a.Single("c", nil)
	})
	require.NoError(t, err)
	require.NoError(t, root.End())
	assert.Equal(t, "<a>\n  <b>x</b>\n  <c/>\n</a>\n", buf.String())
}

func TestIndentNewline(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := tagger.New(&buf, tagger.WithIndent("\t"), tagger.WithNewline("\r\n"))
	require.NoError(t, root.Elem("a", nil, func(a *tagger.Element) error { return a.Single("b", nil) }))
	require.NoError(t, root.End())
	assert.Equal(t, "<a>\r\n\t<b/>\r\n</a>\r\n", buf.String())
}

func TestRootEndFlushes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	root := tagger.New(bw)
	require.NoError(t, root.Single("br", nil))
	assert.Empty(t, buf.String())
	require.NoError(t, root.End())
	assert.Equal(t, "<br/>", buf.String())
}

func TestTagAndDepth(t *testing.T) {
	t.Parallel()
	root := tagger.New(io.Discard)
	assert.Equal(t, "", root.Tag())
	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, "document", root.String())
	err := root.Elem("a", nil, func(a *tagger.Element) error {
		assert.Equal(t, "a", a.Tag())
		assert.Equal(t, 1, a.Depth())
		assert.Equal(t, "<a>", a.String())
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, root.End())
}

func TestSinkFailure(t *testing.T) {
	t.Parallel()
	t.Run("first write", func(t *testing.T) {
		t.Parallel()
		root := tagger.New(&errWriter{})
		_, err := root.Start("a").Attr("x", 1).Open()
		assert.ErrorIs(t, err, errWriteFailed)
		assert.ErrorIs(t, root.Text("more"), errWriteFailed)
		assert.ErrorIs(t, root.End(), errWriteFailed)
	})
	t.Run("mid document", func(t *testing.T) {
		t.Parallel()
		w := &failAfterN{n: 3}
		root := tagger.New(w)
		a, err := root.Start("a").Open() // "<", "a", ">"
		require.NoError(t, err)
		assert.ErrorIs(t, a.Text("x"), errWriteFailed)
		assert.ErrorIs(t, a.End(), errWriteFailed)
		assert.Equal(t, 3, w.calls)
	})
	t.Run("open child is waived", func(t *testing.T) {
		t.Parallel()
		w := &failAfterN{n: 3}
		root := tagger.New(w)
		a, err := root.Start("a").Open()
		require.NoError(t, err)
		_, err = a.Start("b").Open()
		assert.ErrorIs(t, err, errWriteFailed)
		assert.NotPanics(t, func() {
			assert.ErrorIs(t, root.End(), errWriteFailed)
		})
	})
	t.Run("flush", func(t *testing.T) {
		t.Parallel()
		root := tagger.New(bufio.NewWriter(&errWriter{}))
		require.NoError(t, root.Single("br", nil))
		assert.ErrorIs(t, root.End(), errWriteFailed)
	})
}

func TestBuildErrorWaivesClose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	errBoom := errors.New("boom")
	root := tagger.New(&buf)
	err := root.Elem("a", nil, func(a *tagger.Element) error {
		if _, err := a.Start("b").Open(); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, root.End(), errBoom)
	})
	assert.Equal(t, "<a><b>", buf.String())
}

func TestProtocolViolations(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		run  func(root *tagger.Element)
		want string
	}{
		"forgotten child": {
			run: func(root *tagger.Element) {
				a, _ := root.Start("a").Open()
				_, _ = a.Start("b").Open()
				_ = a.End()
			},
			want: "protocol violation: End on <a> while <b> not ended",
		},
		"forgotten at root": {
			run: func(root *tagger.Element) {
				a, _ := root.Start("a").Open()
				_, _ = a.Start("b").Open()
				_ = root.End()
			},
			want: "protocol violation: End on document while <a> <b> not ended",
		},
		"double end": {
			run: func(root *tagger.Element) {
				a, _ := root.Start("a").Open()
				_ = a.End()
				_ = a.End()
			},
			want: "protocol violation: End on ended element <a>",
		},
		"use after end": {
			run: func(root *tagger.Element) {
				a, _ := root.Start("a").Open()
				_ = a.End()
				_ = a.Text("late")
			},
			want: "protocol violation: Text on ended element <a>",
		},
		"unfinished start tag": {
			run: func(root *tagger.Element) {
				root.Start("a")
				_ = root.Text("x")
			},
			want: "protocol violation: Text on document while start tag <a> is unfinished",
		},
		"attr after open": {
			run: func(root *tagger.Element) {
				a := root.Start("a")
				_, _ = a.Open()
				a.Attr("x", 1)
			},
			want: "protocol violation: Attr on finished start tag <a>",
		},
		"open twice": {
			run: func(root *tagger.Element) {
				a := root.Start("a")
				_ = a.Empty()
				_, _ = a.Open()
			},
			want: "protocol violation: Open on finished start tag <a>",
		},
		"unfinished points": {
			run: func(root *tagger.Element) {
				a := root.Start("polyline")
				a.Points().Add(1, 2)
				_ = a.Empty()
			},
			want: "protocol violation: Empty on <polyline> while points value is unfinished",
		},
		"points finished twice": {
			run: func(root *tagger.Element) {
				p := root.Start("polyline").Points()
				p.Finish()
				p.Finish()
			},
			want: "protocol violation: Finish on finished points value of <polyline>",
		},
		"path after finish": {
			run: func(root *tagger.Element) {
				p := root.Start("path").Path()
				p.Finish()
				p.MoveTo(1, 1)
			},
			want: "protocol violation: Draw on finished path value of <path>",
		},
		"empty tag": {
			run: func(root *tagger.Element) {
				root.Start("")
			},
			want: "protocol violation: empty tag name in document",
		},
		"open in prolog": {
			run: func(root *tagger.Element) {
				_ = root.Prolog("xml", func(a *tagger.Attrs) { _, _ = a.Open() })
			},
			want: "protocol violation: Open on processing instruction <?xml>",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			root := tagger.New(io.Discard)
			err := protocolPanic(func() { tc.run(root) })
			require.ErrorIs(t, err, tagger.ErrProtocol)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestProperlyEndedDoesNotPanic(t *testing.T) {
	t.Parallel()
	root := tagger.New(io.Discard)
	assert.NotPanics(t, func() {
		a, err := root.Start("a").Open()
		require.NoError(t, err)
		b, err := a.Start("b").Open()
		require.NoError(t, err)
		require.NoError(t, b.End())
		require.NoError(t, a.End())
		require.NoError(t, root.End())
	})
}
