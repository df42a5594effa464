package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/tagger"
)

var errInvalidTree = errors.New("invalid document tree")

// document is the top level of a YAML tree file.
type document struct {
	Prolog  yaml.Node `yaml:"prolog"`
	Doctype string    `yaml:"doctype"`
	Root    *node     `yaml:"root"`
}

// node is one entry of a tree. A node with a tag is an element; a node
// without one is content (text, raw or comment) of its parent.
type node struct {
	Tag      string      `yaml:"tag"`
	Attrs    yaml.Node   `yaml:"attrs"`
	Points   [][]float64 `yaml:"points"`
	Path     []string    `yaml:"path"`
	Empty    bool        `yaml:"empty"`
	Text     *string     `yaml:"text"`
	Raw      *string     `yaml:"raw"`
	Comment  *string     `yaml:"comment"`
	Children []*node     `yaml:"children"`
}

type renderer struct {
	format Format
}

// renderTree decodes a YAML tree from r and streams it to w.
func renderTree(w io.Writer, r io.Reader, f Format, opts ...tagger.Option) error {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}
	if doc.Root == nil {
		return fmt.Errorf("%w: missing root", errInvalidTree)
	}
	rd := renderer{format: f}
	root := tagger.New(w, opts...)
	if doc.Prolog.Kind != 0 {
		if doc.Prolog.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: line %d: prolog must be a mapping", errInvalidTree, doc.Prolog.Line)
		}
		if err := root.Prolog("xml", func(a *tagger.Attrs) {
			writeAttrs(a, &doc.Prolog)
		}); err != nil {
			return err
		}
	}
	if doc.Doctype != "" {
		if err := root.Declaration("DOCTYPE", doc.Doctype); err != nil {
			return err
		}
	}
	return root.Build(func(root *tagger.Element) error {
		return rd.node(root, doc.Root)
	})
}

func (rd renderer) node(parent *tagger.Element, n *node) error {
	if n.Tag == "" {
		return rd.content(parent, n)
	}
	if err := validate(n); err != nil {
		return err
	}
	cmds := make([]tagger.PathCommand, len(n.Path))
	for i, s := range n.Path {
		c, err := tagger.ParsePathCommand(s)
		if err != nil {
			return fmt.Errorf("<%s>: %w", n.Tag, err)
		}
		cmds[i] = c
	}
	a := parent.Start(n.Tag)
	writeAttrs(a, &n.Attrs)
	if len(n.Points) > 0 {
		a.WithPoints(func(p *tagger.Points) {
			for _, pt := range n.Points {
				p.Add(pt[0], pt[1])
			}
		})
	}
	if len(cmds) > 0 {
		a.WithPath(func(p *tagger.Path) { p.Draw(cmds...) })
	}
	if n.Empty {
		if rd.format == HTML {
			return a.Void()
		}
		return a.Empty()
	}
	el, err := a.Open()
	if err != nil {
		return err
	}
	return el.Build(func(el *tagger.Element) error {
		if n.Text != nil {
			if err := el.Text(*n.Text); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			if err := rd.node(el, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (rd renderer) content(parent *tagger.Element, n *node) error {
	switch {
	case n.Text != nil:
		return parent.Text(*n.Text)
	case n.Raw != nil:
		return parent.Raw(*n.Raw)
	case n.Comment != nil:
		return parent.Comment(*n.Comment)
	default:
		return fmt.Errorf("%w: node has no tag, text, raw or comment", errInvalidTree)
	}
}

func validate(n *node) error {
	if n.Empty && (len(n.Children) > 0 || n.Text != nil) {
		return fmt.Errorf("%w: <%s> is empty but has content", errInvalidTree, n.Tag)
	}
	if n.Attrs.Kind != 0 && n.Attrs.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: attrs of <%s> must be a mapping", errInvalidTree, n.Attrs.Line, n.Tag)
	}
	for _, pt := range n.Points {
		if len(pt) != 2 {
			return fmt.Errorf("%w: <%s> point %v must have two coordinates", errInvalidTree, n.Tag, pt)
		}
	}
	return nil
}

// writeAttrs writes the pairs of a mapping node in document order.
func writeAttrs(a *tagger.Attrs, m *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		a.Attr(m.Content[i].Value, m.Content[i+1].Value)
	}
}
