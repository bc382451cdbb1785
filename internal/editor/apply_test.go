package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tagx/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingTarget is a Record whose Set always fails.
type failingTarget struct {
	*Record
	err error
}

func (f *failingTarget) Set(tag tags.Tag, v tags.Value) error {
	return &FieldError{Tag: tag, Err: f.err}
}

func TestApply(t *testing.T) {
	t.Run("matching shapes are written directly", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, Apply(r, tags.Year, tags.Int(2023)))

		v, ok := r.Get(tags.Year)
		require.True(t, ok)
		assert.Equal(t, 2023, v.AsInt())
		assert.True(t, r.Dirty())
	})

	t.Run("lists are replaced, not merged", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, Apply(r, tags.Genres, tags.List("Rock", "Pop")))
		require.NoError(t, Apply(r, tags.Genres, tags.List("Jazz")))

		v, _ := r.Get(tags.Genres)
		assert.Equal(t, []string{"Jazz"}, v.AsList())
	})

	t.Run("applying twice equals applying once", func(t *testing.T) {
		once := NewRecord("a.mp3", FamilyID3v2)
		twice := NewRecord("b.mp3", FamilyID3v2)
		v := tags.List("Sans", "Frisk")

		require.NoError(t, Apply(once, tags.AlbumArtists, v))
		require.NoError(t, Apply(twice, tags.AlbumArtists, v))
		require.NoError(t, Apply(twice, tags.AlbumArtists, v))

		a, _ := once.Get(tags.AlbumArtists)
		b, _ := twice.Get(tags.AlbumArtists)
		assert.True(t, a.Equal(b))
	})

	t.Run("a scalar into a list field is wrapped", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, Apply(r, tags.Comment, tags.Text("Remastered")))

		v, _ := r.Get(tags.Comment)
		assert.Equal(t, tags.ListText, v.Shape())
		assert.Equal(t, []string{"Remastered"}, v.AsList())

		require.NoError(t, Apply(r, tags.Genres, tags.Int(80)))
		v, _ = r.Get(tags.Genres)
		assert.Equal(t, []string{"80"}, v.AsList())
	})

	t.Run("other mismatches fail", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		date := tags.DateOf(tags.Date{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Precision: tags.PrecisionDay})

		err := Apply(r, tags.Year, date)
		require.ErrorIs(t, err, ErrShapeMismatch)

		var ae *ApplyError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "a.mp3", ae.Path)
		assert.Equal(t, tags.Year, ae.Tag)

		assert.ErrorIs(t, Apply(r, tags.Title, tags.List("a", "b")), ErrShapeMismatch)
		assert.ErrorIs(t, Apply(r, tags.Genres, tags.Blobs()), ErrShapeMismatch)

		_, ok := r.Get(tags.Year)
		assert.False(t, ok)
	})

	t.Run("unsupported tags fail", func(t *testing.T) {
		r := NewRecord("legacy.mp3", FamilyID3v1)
		err := Apply(r, tags.Composers, tags.List("Toby Fox"))
		assert.ErrorIs(t, err, ErrUnsupportedByTarget)
	})

	t.Run("field errors are wrapped with the path", func(t *testing.T) {
		boom := errors.New("disk full")
		target := &failingTarget{Record: NewRecord("x.mp3", FamilyID3v2), err: boom}

		err := Apply(target, tags.Title, tags.Text("x"))
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "x.mp3")

		var fe *FieldError
		assert.True(t, errors.As(err, &fe))
	})
}

func TestAppend(t *testing.T) {
	t.Run("adds to the end of a list", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, Apply(r, tags.Performers, tags.List("Sans")))
		require.NoError(t, Append(r, tags.Performers, tags.List("Papyrus", "Frisk")))

		v, _ := r.Get(tags.Performers)
		assert.Equal(t, []string{"Sans", "Papyrus", "Frisk"}, v.AsList())
	})

	t.Run("starts an unset list", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, Append(r, tags.Composers, tags.Text("Toby Fox")))

		v, _ := r.Get(tags.Composers)
		assert.Equal(t, []string{"Toby Fox"}, v.AsList())
	})

	t.Run("requires a list field", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		assert.ErrorIs(t, Append(r, tags.Title, tags.Text("x")), ErrShapeMismatch)
		assert.ErrorIs(t, Append(NewRecord("b.mp3", FamilyID3v1), tags.Composers, tags.List("x")), ErrUnsupportedByTarget)
	})
}

func TestRecord(t *testing.T) {
	t.Run("Set enforces the declared shape", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		err := r.Set(tags.Comment, tags.Text("wrong shape"))
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.False(t, r.Dirty())
	})

	t.Run("ID3v1 supports a fixed subset", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v1)
		assert.Equal(t, []tags.Tag{tags.Title, tags.Performers, tags.Album, tags.Comment, tags.Genres, tags.Year, tags.Track}, r.Supported())
		assert.Equal(t, "ID3v1", r.Family().String())
	})

	t.Run("ID3v2 supports the whole catalog", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		assert.Len(t, r.Supported(), len(tags.All()))
	})

	t.Run("MarkClean", func(t *testing.T) {
		r := NewRecord("a.mp3", FamilyID3v2)
		require.NoError(t, r.Set(tags.Title, tags.Text("x")))
		r.MarkClean()
		assert.False(t, r.Dirty())
		assert.Len(t, r.Values(), 1)
	})
}
