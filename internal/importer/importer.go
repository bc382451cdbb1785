// package importer reads bulk tag imports into [editor.Table] values.
//
// Three layouts are understood, selected by file extension:
//   - .csv: a header row of tag names and one row of values per file, delimited by ';'
//     (the layout exported by mp3tag and by `tagx export`)
//   - .xml: a root element with one child per file, each holding one element per tag
//   - .yaml/.yml: a sequence with one mapping of tag name to value per file
//
// Names are left raw; resolving them against the tag catalog is up to the editor.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
)

var (
	ErrInvalidSource = errors.New("invalid import source")
	ErrEmptySource   = errors.New("import source is empty")
)

// DefaultDelimiter separates CSV columns.
const DefaultDelimiter = ';'

type options struct {
	delimiter rune
}

// Option configures [Load].
type Option func(*options)

// WithDelimiter sets the CSV column delimiter.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// Load reads the import file at path, choosing a parser by its extension.
func Load(path string, opts ...Option) (*editor.Table, error) {
	o := &options{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(o)
	}

	parse, err := parserFor(path, o)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidSource, path)
		}
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	table, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func parserFor(path string, o *options) (func(io.Reader) (*editor.Table, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return func(r io.Reader) (*editor.Table, error) { return ParseCSV(r, o.delimiter) }, nil
	case ".xml":
		return ParseXML, nil
	case ".yaml", ".yml":
		return ParseYAML, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a .csv, .xml or .yaml file", ErrInvalidSource, path)
	}
}

// columns accumulates an ordered header from records whose keys may vary.
type columns struct {
	names []string
	index map[string]int
}

func newColumns() *columns {
	return &columns{index: make(map[string]int)}
}

func (c *columns) add(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	return len(c.names) - 1
}

// table aligns keyed records into rows of the final header width. Keys absent from a record
// become empty cells.
func (c *columns) table(records []map[int]string) *editor.Table {
	t := &editor.Table{Header: c.names, Rows: make([][]string, len(records))}
	for i, rec := range records {
		row := make([]string, len(c.names))
		for j, v := range rec {
			row[j] = v
		}
		t.Rows[i] = row
	}
	return t
}
