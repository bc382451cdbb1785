package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
)

// ParseCSV reads a delimited table whose first record is the header.
//
// A trailing empty header column, left by exporters that end every line with the delimiter, is
// dropped together with its cells. Rows are not padded or truncated otherwise.
func ParseCSV(r io.Reader, delimiter rune) (*editor.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	trim := len(header) > 1 && strings.TrimSpace(header[len(header)-1]) == ""
	if trim {
		header = header[:len(header)-1]
	}

	table := &editor.Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if trim && len(record) == len(header)+1 && strings.TrimSpace(record[len(record)-1]) == "" {
			record = record[:len(record)-1]
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}
