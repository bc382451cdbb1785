package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads a sequence of mappings, one per file:
//
//	- Title: One
//	  Genres: [Rock, Pop]
//	- Title: Two
//	  Year: 2002
//
// The items of a sequence value are kept in [editor.Table.Items] so they reach the coercer
// unsplit; the row holds them joined with ", ". Key order of the first appearance of each name is
// kept for the header.
func ParseYAML(r io.Reader) (*editor.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySource
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of files at line %d", root.Line)
	}

	cols := newColumns()
	records := make([]map[int]string, 0, len(root.Content))
	items := make(map[editor.Cell][]string)
	for row, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("expected a mapping of tags at line %d", item.Line)
		}

		rec := make(map[int]string)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, val := item.Content[i], item.Content[i+1]
			cell, seq, err := yamlCell(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key.Value, err)
			}
			col := cols.add(key.Value)
			rec[col] = cell
			if seq != nil {
				items[editor.Cell{Row: row, Column: col}] = seq
			}
		}
		records = append(records, rec)
	}

	table := cols.table(records)
	if len(items) > 0 {
		table.Items = items
	}
	return table, nil
}

// yamlCell returns the text of a value, and the items of a sequence.
func yamlCell(n *yaml.Node) (string, []string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil, nil
		}
		return n.Value, nil, nil
	case yaml.SequenceNode:
		seq := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return "", nil, fmt.Errorf("nested value at line %d", c.Line)
			}
			seq = append(seq, c.Value)
		}
		return strings.Join(seq, ", "), seq, nil
	default:
		return "", nil, fmt.Errorf("unsupported value at line %d", n.Line)
	}
}
