package editor

import (
	"context"
	"sync"
	"testing"

	"github.com/desertthunder/tagx/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTargets(paths ...string) ([]Target, []*Record) {
	targets := make([]Target, len(paths))
	records := make([]*Record, len(paths))
	for i, p := range paths {
		records[i] = NewRecord(p, FamilyID3v2)
		targets[i] = records[i]
	}
	return targets, records
}

func TestApplyToAll(t *testing.T) {
	t.Run("writes the value to every target", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")

		outcomes := NewCoordinator().ApplyToAll(targets, tags.Track, "7")
		require.Len(t, outcomes, 2)
		for i, o := range outcomes {
			assert.True(t, o.OK())
			assert.Equal(t, i, o.Target)
			assert.Equal(t, -1, o.Column)

			v, ok := records[i].Get(tags.Track)
			require.True(t, ok)
			assert.True(t, v.Equal(tags.Int(7)))
		}
	})

	t.Run("a failing target does not stop the others", func(t *testing.T) {
		legacy := NewRecord("legacy.mp3", FamilyID3v1)
		modern := NewRecord("modern.mp3", FamilyID3v2)
		targets := []Target{legacy, modern}

		outcomes := NewCoordinator().ApplyToAll(targets, tags.Composers, "Toby Fox")
		assert.ErrorIs(t, outcomes[0].Err, ErrUnsupportedByTarget)
		assert.True(t, outcomes[1].OK())

		v, _ := modern.Get(tags.Composers)
		assert.Equal(t, []string{"Toby Fox"}, v.AsList())
	})

	t.Run("coercion failures are reported for every target", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")

		outcomes := NewCoordinator().ApplyToAll(targets, tags.Year, "abc")
		for i, o := range outcomes {
			assert.ErrorIs(t, o.Err, tags.ErrNotAnInteger)
			assert.False(t, records[i].Dirty())
		}
	})

	t.Run("Edit resolves the name first", func(t *testing.T) {
		targets, records := newTargets("1.mp3")

		report, err := NewCoordinator().Edit(targets, "album artists", "Sans, Frisk")
		require.NoError(t, err)
		assert.Equal(t, 1, report.Succeeded())

		v, _ := records[0].Get(tags.AlbumArtists)
		assert.Equal(t, []string{"Sans", "Frisk"}, v.AsList())

		_, err = NewCoordinator().Edit(targets, "not a real tag", "x")
		assert.ErrorIs(t, err, tags.ErrUnknownTag)
	})

	t.Run("AppendToAll merges lists", func(t *testing.T) {
		targets, records := newTargets("1.mp3")
		c := NewCoordinator()
		c.ApplyToAll(targets, tags.Genres, "Rock")
		c.AppendToAll(targets, tags.Genres, "Pop, Jazz")

		v, _ := records[0].Get(tags.Genres)
		assert.Equal(t, []string{"Rock", "Pop", "Jazz"}, v.AsList())
	})

	t.Run("ApplyValue writes a pre-coerced value", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		outcomes := NewCoordinator().ApplyValue(targets, tags.Genres, tags.List("Rock", "Pop"))
		for i, o := range outcomes {
			assert.True(t, o.OK())
			v, _ := records[i].Get(tags.Genres)
			assert.Equal(t, []string{"Rock", "Pop"}, v.AsList())
		}
	})

	t.Run("changes are observed", func(t *testing.T) {
		targets, _ := newTargets("1.mp3")
		var changes []Change
		c := NewCoordinator(WithChangeFunc(func(ch Change) { changes = append(changes, ch) }))

		c.ApplyToAll(targets, tags.Title, "First")
		c.ApplyToAll(targets, tags.Title, "Second")

		require.Len(t, changes, 2)
		assert.False(t, changes[0].HadOld)
		assert.True(t, changes[1].HadOld)
		assert.Equal(t, "First", changes[1].Old.AsText())
		assert.Equal(t, "Second", changes[1].New.AsText())
	})

	t.Run("the configured locale is used", func(t *testing.T) {
		targets, records := newTargets("1.mp3")
		c := NewCoordinator(WithCoercer(tags.NewCoercer(tags.Locale{DateOrder: tags.DayFirst})))
		c.ApplyToAll(targets, tags.ReleaseDate, "03/04/2023")

		v, _ := records[0].Get(tags.ReleaseDate)
		assert.Equal(t, "2023-04-03", v.String())
	})
}

func TestApplyToAllParallel(t *testing.T) {
	t.Run("matches the sequential result", func(t *testing.T) {
		paths := make([]string, 50)
		for i := range paths {
			paths[i] = string(rune('a'+i%26)) + ".mp3"
		}
		targets, records := newTargets(paths...)

		var mu sync.Mutex
		seen := 0
		c := NewCoordinator(WithChangeFunc(func(Change) {
			mu.Lock()
			seen++
			mu.Unlock()
		}))

		outcomes, err := c.ApplyToAllParallel(context.Background(), targets, tags.BeatsPerMinute, "128", 4)
		require.NoError(t, err)
		require.Len(t, outcomes, 50)
		assert.Equal(t, 50, seen)
		for i, o := range outcomes {
			assert.True(t, o.OK())
			assert.Equal(t, i, o.Target)
			v, _ := records[i].Get(tags.BeatsPerMinute)
			assert.Equal(t, 128, v.AsInt())
		}
	})

	t.Run("a cancelled context writes nothing", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcomes, err := NewCoordinator().ApplyToAllParallel(ctx, targets, tags.Title, "x", 1)
		require.ErrorIs(t, err, context.Canceled)
		for i, o := range outcomes {
			assert.ErrorIs(t, o.Err, context.Canceled)
			assert.False(t, records[i].Dirty())
		}
	})

	t.Run("coercion failures do not start workers", func(t *testing.T) {
		targets, _ := newTargets("1.mp3")
		outcomes, err := NewCoordinator().ApplyToAllParallel(context.Background(), targets, tags.Length, "forever", 0)
		require.NoError(t, err)
		assert.ErrorIs(t, outcomes[0].Err, tags.ErrNotADuration)
	})
}

func TestApplyTable(t *testing.T) {
	t.Run("row count mismatch aborts before any write", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3", "3.mp3")
		table := &Table{
			Header: []string{"Title"},
			Rows:   [][]string{{"One"}, {"Two"}},
		}

		report, err := NewCoordinator().ApplyTable(targets, table)
		require.ErrorIs(t, err, ErrRowCountMismatch)
		assert.Nil(t, report)
		for _, r := range records {
			assert.False(t, r.Dirty())
		}
	})

	t.Run("row width mismatch aborts before any write", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		table := &Table{
			Header: []string{"Title", "Year"},
			Rows:   [][]string{{"One", "2001"}, {"Two"}},
		}

		_, err := NewCoordinator().ApplyTable(targets, table)
		require.ErrorIs(t, err, ErrRowWidthMismatch)
		assert.False(t, records[0].Dirty())
	})

	t.Run("one malformed cell fails alone", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3", "3.mp3", "4.mp3")
		table := &Table{
			Header: []string{"Title", "Year", "Album Artists"},
			Rows: [][]string{
				{"One", "2001", "Sans"},
				{"Two", "2002", "Sans, Frisk"},
				{"Three", "abc", "Papyrus"},
				{"Four", "2004", "Undyne"},
			},
		}

		report, err := NewCoordinator().ApplyTable(targets, table)
		require.NoError(t, err)
		assert.Equal(t, 11, report.Succeeded())

		failures := report.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, 2, failures[0].Target)
		assert.Equal(t, 1, failures[0].Column)
		assert.Equal(t, tags.Year, failures[0].Tag)
		assert.ErrorIs(t, failures[0].Err, tags.ErrNotAnInteger)

		title, _ := records[2].Get(tags.Title)
		assert.Equal(t, "Three", title.AsText())
		artists, _ := records[2].Get(tags.AlbumArtists)
		assert.Equal(t, []string{"Papyrus"}, artists.AsList())
		_, hasYear := records[2].Get(tags.Year)
		assert.False(t, hasYear)

		year, _ := records[3].Get(tags.Year)
		assert.Equal(t, 2004, year.AsInt())

		o, ok := report.At(1, 2)
		require.True(t, ok)
		assert.True(t, o.OK())
		assert.Equal(t, []int{0, 1, 2, 3}, report.Touched())
		assert.Contains(t, report.Summary(), "11 of 12 succeeded")
		assert.Contains(t, report.Summary(), "row 3, column 2")
	})

	t.Run("unknown header names fail their column only", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		table := &Table{
			Header: []string{"Bogus", "Title"},
			Rows:   [][]string{{"x", "One"}, {"y", "Two"}},
		}

		report, err := NewCoordinator().ApplyTable(targets, table)
		require.NoError(t, err)
		assert.Len(t, report.Failures(), 2)
		for _, f := range report.Failures() {
			assert.Equal(t, 0, f.Column)
			assert.ErrorIs(t, f.Err, tags.ErrUnknownTag)
		}

		v, _ := records[1].Get(tags.Title)
		assert.Equal(t, "Two", v.AsText())
	})

	t.Run("empty cells are skipped when configured", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		table := &Table{
			Header: []string{"Title", "BPM"},
			Rows:   [][]string{{"One", ""}, {"", "120"}},
		}

		report, err := NewCoordinator(WithSkipEmpty()).ApplyTable(targets, table)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Succeeded())
		assert.Equal(t, 2, report.Skipped())
		assert.Empty(t, report.Failures())

		_, ok := records[1].Get(tags.Title)
		assert.False(t, ok)
		assert.Contains(t, report.Summary(), "2 of 2 succeeded (2 empty skipped)")
	})

	t.Run("empty cells fail for numeric tags by default", func(t *testing.T) {
		targets, _ := newTargets("1.mp3")
		table := &Table{Header: []string{"Year"}, Rows: [][]string{{""}}}

		report, err := NewCoordinator().ApplyTable(targets, table)
		require.NoError(t, err)
		assert.Len(t, report.Failures(), 1)
	})

	t.Run("a single cell for a list tag becomes a one-element list", func(t *testing.T) {
		targets, records := newTargets("1.mp3")
		table := &Table{Header: []string{"Genres"}, Rows: [][]string{{"Chiptune"}}}

		_, err := NewCoordinator().ApplyTable(targets, table)
		require.NoError(t, err)

		v, _ := records[0].Get(tags.Genres)
		assert.Equal(t, []string{"Chiptune"}, v.AsList())
	})

	t.Run("pre-split items are coerced as a list", func(t *testing.T) {
		targets, records := newTargets("1.mp3", "2.mp3")
		table := &Table{
			Header: []string{"Genres", "Year", "Title"},
			Rows: [][]string{
				{"Drum, Bass, Rock", "1999", "Hello, World"},
				{"Jazz", "1999, 2000", "x"},
			},
			Items: map[Cell][]string{
				{Row: 0, Column: 0}: {"Drum", "Bass", "Rock"},
				{Row: 0, Column: 2}: {"Hello, World"},
				{Row: 1, Column: 1}: {"1999", "2000"},
			},
		}

		report, err := NewCoordinator().ApplyTable(targets, table)
		require.NoError(t, err)

		genres, _ := records[0].Get(tags.Genres)
		assert.Equal(t, []string{"Drum", "Bass", "Rock"}, genres.AsList())
		title, _ := records[0].Get(tags.Title)
		assert.Equal(t, "Hello, World", title.AsText())

		failures := report.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, 1, failures[0].Target)
		assert.ErrorIs(t, failures[0].Err, tags.ErrNotAnInteger)
	})

	t.Run("a nil table is a table without rows", func(t *testing.T) {
		targets, _ := newTargets("1.mp3")

		_, err := NewCoordinator().ApplyTable(targets, nil)
		assert.ErrorIs(t, err, ErrRowCountMismatch)

		report, err := NewCoordinator().ApplyTable(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, report.Outcomes)
	})

	t.Run("an empty table against no targets is a no-op", func(t *testing.T) {
		report, err := NewCoordinator().ApplyTable(nil, &Table{Header: []string{"Title"}})
		require.NoError(t, err)
		assert.Empty(t, report.Outcomes)
		assert.Equal(t, "0 of 0 succeeded", report.Summary())
	})
}
