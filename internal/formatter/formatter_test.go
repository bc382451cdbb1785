package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/importer"
	"github.com/desertthunder/tagx/internal/tags"
)

func sampleTargets(t *testing.T) []editor.Target {
	t.Helper()

	one := editor.NewRecord("/music/one.mp3", editor.FamilyID3v2)
	two := editor.NewRecord("/music/two.mp3", editor.FamilyID3v2)

	sets := []struct {
		r   *editor.Record
		tag tags.Tag
		v   tags.Value
	}{
		{one, tags.Title, tags.Text("Song One")},
		{one, tags.AlbumArtists, tags.List("Sans", "Frisk")},
		{one, tags.Year, tags.Int(2015)},
		{one, tags.Length, tags.Duration(3*time.Minute + 5*time.Second)},
		{one, tags.Pictures, tags.Blobs(tags.Blob{MIMEType: "image/png", Data: make([]byte, 2048)})},
		{two, tags.Title, tags.Text("Song | Two")},
		{two, tags.ReleaseDate, tags.DateOf(tags.Date{Time: time.Date(2016, 2, 3, 0, 0, 0, 0, time.UTC), Precision: tags.PrecisionDay})},
	}
	for _, s := range sets {
		if err := s.r.Set(s.tag, s.v); err != nil {
			t.Fatalf("failed to set %s: %v", s.tag, err)
		}
	}

	return []editor.Target{one, two}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleTargets(t), ';')
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines: %s", len(lines), data)
		}
		if lines[0] != "Title;AlbumArtists;Year;Length;ReleaseDate" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if lines[1] != "Song One;Sans, Frisk;2015;03:05;" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if strings.Contains(string(data), "Pictures") {
			t.Errorf("pictures should not be exported to CSV")
		}
	})

	t.Run("ExportToCSV output imports back onto the same files", func(t *testing.T) {
		source := sampleTargets(t)
		data, err := ExportToCSV(source, ';')
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		table, err := importer.ParseCSV(strings.NewReader(string(data)), ';')
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}

		fresh := []editor.Target{
			editor.NewRecord("/music/one.mp3", editor.FamilyID3v2),
			editor.NewRecord("/music/two.mp3", editor.FamilyID3v2),
		}
		report, err := editor.NewCoordinator(editor.WithSkipEmpty()).ApplyTable(fresh, table)
		if err != nil {
			t.Fatalf("ApplyTable failed: %v", err)
		}
		if len(report.Failures()) != 0 {
			t.Fatalf("unexpected failures: %s", report.Summary())
		}

		for i := range source {
			for _, tag := range Columns(source) {
				want, hadWant := source[i].Get(tag)
				got, hadGot := fresh[i].Get(tag)
				if hadWant != hadGot || (hadWant && !want.Equal(got)) {
					t.Errorf("%s %s: want %v, got %v", source[i].Path(), tag, want, got)
				}
			}
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleTargets(t))
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Tags") {
			t.Error("Markdown missing title")
		}
		if !strings.Contains(output, "**Files**: 2") {
			t.Error("Markdown missing file count")
		}
		if !strings.Contains(output, "## one.mp3") {
			t.Error("Markdown missing file section")
		}
		if !strings.Contains(output, "| AlbumArtists | Sans, Frisk |") {
			t.Error("Markdown missing list row")
		}
		if !strings.Contains(output, `Song \| Two`) {
			t.Error("Markdown should escape pipes in cells")
		}
		if !strings.Contains(output, "1 attachment (2.0 kB)") {
			t.Errorf("Markdown missing picture summary, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleTargets(t))
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Files: 2") {
			t.Error("Text missing file count")
		}
		if !strings.Contains(output, "/music/two.mp3\n  Title: Song | Two\n  ReleaseDate: 2016-02-03\n") {
			t.Errorf("Text missing second file block, got: %s", output)
		}
	})
}

func TestWriteExport(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatMarkdown, FormatText} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "export."+string(format))
			if err := WriteExport(sampleTargets(t), format, path, ';'); err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read export: %v", err)
			}
			if !strings.Contains(string(data), "Song One") {
				t.Errorf("export missing content: %s", data)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		if err := WriteExport(nil, Format("pdf"), filepath.Join(t.TempDir(), "x"), ';'); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"", FormatCSV},
		{"MD", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"text", FormatText},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}
