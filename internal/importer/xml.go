package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
)

// ParseXML reads a document shaped like
//
//	<files>
//	  <file><Title>One</Title><Year>2001</Year></file>
//	  <file><Title>Two</Title></file>
//	</files>
//
// Element names below each file element are raw tag names; their text is the raw value. The header
// lists names in order of first appearance, and tags missing from a file become empty cells.
// Names of the root and file elements are not significant.
func ParseXML(r io.Reader) (*editor.Table, error) {
	dec := xml.NewDecoder(r)
	cols := newColumns()

	var (
		records []map[int]string
		current map[int]string
		column  = -1
		text    strings.Builder
		depth   int
		sawRoot bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				sawRoot = true
			case 2:
				current = make(map[int]string)
			case 3:
				column = cols.add(el.Name.Local)
				text.Reset()
			default:
				return nil, fmt.Errorf("unexpected element <%s> nested in a tag value", el.Name.Local)
			}
		case xml.CharData:
			if depth == 3 {
				text.Write(el)
			}
		case xml.EndElement:
			switch depth {
			case 2:
				records = append(records, current)
				current = nil
			case 3:
				current[column] = strings.TrimSpace(text.String())
				column = -1
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, ErrEmptySource
	}
	return cols.table(records), nil
}
