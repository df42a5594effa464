package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/tagger"
)

// convertJSON streams the YAML mapping read from r to w as a JSON object.
// Nested mappings become nested objects; sequences and scalars are written
// as field values.
func convertJSON(w io.Writer, r io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode mapping: %w", err)
	}
	m := &doc
	if m.Kind == yaml.DocumentNode && len(m.Content) == 1 {
		m = m.Content[0]
	}
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: top level must be a mapping", errInvalidTree, m.Line)
	}
	return tagger.NewObject(w).Build(func(o *tagger.Object) error {
		return writeMembers(o, m)
	})
}

func writeMembers(o *tagger.Object, m *yaml.Node) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i].Value, m.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}
		if val.Kind == yaml.MappingNode {
			child, err := o.Object(key)
			if err != nil {
				return err
			}
			if err := child.Build(func(c *tagger.Object) error {
				return writeMembers(c, val)
			}); err != nil {
				return err
			}
			continue
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", val.Line, err)
		}
		if err := o.Field(key, v); err != nil {
			return err
		}
	}
	return nil
}
