// package formatter exports the tags of audio files to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/tags"
	"github.com/dustin/go-humanize"
)

// Format names an export layout.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// ParseFormat accepts a format name or a common alias ("md", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected csv, markdown or txt)", s)
	}
}

// Columns returns the tags set on at least one target, in catalog order. Pictures are left out
// since they cannot be read back from text.
func Columns(targets []editor.Target) []tags.Tag {
	var cols []tags.Tag
	for _, tag := range tags.All() {
		if tags.ShapeOf(tag) == tags.Binary {
			continue
		}
		for _, t := range targets {
			if _, ok := t.Get(tag); ok {
				cols = append(cols, tag)
				break
			}
		}
	}
	return cols
}

// ExportToCSV writes one row per target, in target order, under a header of canonical tag names.
//
// The output is the layout the importer reads, so a table can be exported, edited and imported
// back onto the same files.
func ExportToCSV(targets []editor.Target, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = delimiter

	cols := Columns(targets)
	headers := make([]string, len(cols))
	for i, tag := range cols {
		headers[i] = tag.String()
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range targets {
		record := make([]string, len(cols))
		for i, tag := range cols {
			if v, ok := t.Get(tag); ok {
				record[i] = v.String()
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a section per file with a table of its set tags.
func ExportToMarkdown(targets []editor.Target) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Tags\n\n")
	buf.WriteString(fmt.Sprintf("**Files**: %d\n\n", len(targets)))

	for _, t := range targets {
		buf.WriteString(fmt.Sprintf("## %s\n\n", filepath.Base(t.Path())))

		values := Values(t)
		if len(values) == 0 {
			buf.WriteString("_No tags._\n\n")
			continue
		}

		buf.WriteString("| Tag | Value |\n|-----|-------|\n")
		for _, tv := range values {
			buf.WriteString(fmt.Sprintf("| %s | %s |\n", tv.Tag, escapeCell(Render(tv.Value))))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders each file as an indented block of "Tag: value" lines.
func ExportToText(targets []editor.Target) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Files: %d\n", len(targets)))
	for _, t := range targets {
		buf.WriteString(fmt.Sprintf("\n%s\n", t.Path()))
		for _, tv := range Values(t) {
			buf.WriteString(fmt.Sprintf("  %s: %s\n", tv.Tag, Render(tv.Value)))
		}
	}

	return buf.Bytes(), nil
}

// TagValue pairs a tag with its current value.
type TagValue struct {
	Tag   tags.Tag
	Value tags.Value
}

// Values returns the set tags of t in catalog order.
func Values(t editor.Target) []TagValue {
	var out []TagValue
	for _, tag := range tags.All() {
		if v, ok := t.Get(tag); ok {
			out = append(out, TagValue{Tag: tag, Value: v})
		}
	}
	return out
}

// Render formats v for display. Attachments are summarized with their total size.
func Render(v tags.Value) string {
	if v.Shape() != tags.Binary {
		return v.String()
	}

	var size uint64
	for _, b := range v.AsBlobs() {
		size += uint64(len(b.Data))
	}
	return fmt.Sprintf("%s (%s)", v, humanize.Bytes(size))
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", "<br>")
}

// WriteExport renders targets in format and writes the result to path.
func WriteExport(targets []editor.Target, format Format, path string, delimiter rune) error {
	data, err := Export(targets, format, delimiter)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}

// Export renders targets in format. delimiter only applies to CSV.
func Export(targets []editor.Target, format Format, delimiter rune) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatCSV:
		data, err = ExportToCSV(targets, delimiter)
	case FormatMarkdown:
		data, err = ExportToMarkdown(targets)
	case FormatText:
		data, err = ExportToText(targets)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", format, err)
	}
	return data, nil
}
