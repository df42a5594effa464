package tagger

import (
	"fmt"
	"iter"
	"slices"
)

// Rower provides the cells of one table row. Required by [Table].
type Rower interface {
	Row() []string
}

// Headed provides column headers, written as a thead.
type Headed interface {
	Header() []string
}

// Titled provides a caption for the table.
type Titled interface {
	Title() string
}

// Aligned sets per-column alignment. Default: AlignLeft.
type Aligned interface {
	Alignments() []Alignment
}

// Footered provides a footer row, written as a tfoot.
type Footered interface {
	Footer() []string
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table writes items as an HTML table inside parent. The optional
// interfaces are read from the first item. Nothing is written for no
// items.
func Table[T any](parent *Element, items ...T) error {
	return TableIter(parent, slices.Values(items))
}

// TableIter is like [Table] but writes each row as it arrives from seq.
func TableIter[T any](parent *Element, seq iter.Seq[T]) error {
	var (
		t      tableWriter
		tbody  *Element
		err    error
		opened bool
	)
	for item := range seq {
		row, ok := any(item).(Rower)
		if !ok {
			err = fmt.Errorf("%w: table requires Rower, not implemented by %T", ErrMissingInterface, item)
			if opened {
				parent.d.fail(err)
			}
			return err
		}
		if !opened {
			opened = true
			if tbody, err = t.open(parent, any(item)); err != nil {
				return err
			}
		}
		if err = t.row(tbody, "td", row.Row()); err != nil {
			return err
		}
	}
	if !opened {
		return nil
	}
	return t.close(tbody)
}

type tableWriter struct {
	table  *Element
	aligns []Alignment
	footer []string
	footed bool
}

func (t *tableWriter) open(parent *Element, first any) (*Element, error) {
	if a, ok := first.(Aligned); ok {
		t.aligns = a.Alignments()
	}
	if f, ok := first.(Footered); ok {
		t.footer, t.footed = f.Footer(), true
	}
	var err error
	if t.table, err = parent.Start("table").Open(); err != nil {
		return nil, err
	}
	if ti, ok := first.(Titled); ok && ti.Title() != "" {
		if err := t.table.Elem("caption", nil, func(c *Element) error {
			return c.Text(ti.Title())
		}); err != nil {
			return nil, err
		}
	}
	if h, ok := first.(Headed); ok {
		if err := t.table.Elem("thead", nil, func(thead *Element) error {
			return t.row(thead, "th", h.Header())
		}); err != nil {
			return nil, err
		}
	}
	return t.table.Start("tbody").Open()
}

func (t *tableWriter) row(parent *Element, cell string, cells []string) error {
	return parent.Elem("tr", nil, func(tr *Element) error {
		for i, c := range cells {
			if err := tr.Elem(cell, t.alignStyle(i), func(td *Element) error {
				return td.Text(c)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *tableWriter) close(tbody *Element) error {
	if err := tbody.End(); err != nil {
		return err
	}
	if t.footed {
		if err := t.table.Elem("tfoot", nil, func(tfoot *Element) error {
			return t.row(tfoot, "td", t.footer)
		}); err != nil {
			return err
		}
	}
	return t.table.End()
}

func (t *tableWriter) alignStyle(col int) func(a *Attrs) {
	if col >= len(t.aligns) {
		return nil
	}
	switch t.aligns[col] {
	case AlignRight:
		return func(a *Attrs) { a.Attr("style", "text-align: right") }
	case AlignCenter:
		return func(a *Attrs) { a.Attr("style", "text-align: center") }
	default:
		return nil
	}
}
