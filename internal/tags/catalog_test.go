package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	t.Run("every tag has a name and a shape", func(t *testing.T) {
		all := All()
		assert.Len(t, all, int(numTags))
		for _, tag := range all {
			assert.NotEmpty(t, tag.String(), "tag %d has no name", int(tag))
			assert.NotEmpty(t, tag.Usage(), "tag %s has no usage", tag)
		}
	})

	t.Run("names are unique", func(t *testing.T) {
		seen := map[string]Tag{}
		for _, tag := range All() {
			prev, dup := seen[tag.String()]
			assert.False(t, dup, "%s declared by %d and %d", tag, int(prev), int(tag))
			seen[tag.String()] = tag
		}
	})

	t.Run("ShapeOf is deterministic", func(t *testing.T) {
		for _, tag := range All() {
			assert.Equal(t, ShapeOf(tag), ShapeOf(tag))
		}
	})

	t.Run("shapes", func(t *testing.T) {
		tests := []struct {
			tag  Tag
			want Shape
		}{
			{Title, ScalarText},
			{Comment, ScalarText},
			{ISRC, ScalarText},
			{Year, ScalarInt},
			{Track, ScalarInt},
			{BeatsPerMinute, ScalarInt},
			{RecordingDate, ScalarDate},
			{Length, ScalarDuration},
			{AlbumArtists, ListText},
			{Genres, ListText},
			{Composers, ListText},
			{Pictures, Binary},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, ShapeOf(tt.tag), tt.tag.String())
		}
	})

	t.Run("tags outside the catalog", func(t *testing.T) {
		bogus := Tag(999)
		assert.False(t, bogus.Valid())
		assert.Equal(t, "Tag(999)", bogus.String())
		assert.Equal(t, ScalarText, ShapeOf(bogus))
	})

	t.Run("IsScalar", func(t *testing.T) {
		assert.True(t, ScalarDate.IsScalar())
		assert.False(t, ListText.IsScalar())
		assert.False(t, Binary.IsScalar())
	})
}
