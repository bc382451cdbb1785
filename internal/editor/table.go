package editor

import "fmt"

// Table is a bulk import: a header of raw tag names and one row of raw values per target, aligned
// by position with the targets it is applied to.
type Table struct {
	Header []string
	Rows   [][]string
	// Items holds the values of cells the source already split into several items, such as a
	// YAML sequence. Rows keeps the joined text of those cells.
	Items map[Cell][]string
}

// Cell addresses one value of a [Table].
type Cell struct {
	Row, Column int
}

// Validate checks that t can be applied to n targets without misaligning rows: there must be
// exactly one row per target and every row must be as wide as the header.
func (t *Table) Validate(n int) error {
	if len(t.Rows) != n {
		return &ApplyError{
			Kind:   ErrRowCountMismatch,
			Detail: fmt.Sprintf("%d rows for %d targets", len(t.Rows), n),
		}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return &ApplyError{
				Kind:   ErrRowWidthMismatch,
				Detail: fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(row), len(t.Header)),
			}
		}
	}
	return nil
}
