package tags

import "fmt"

// Tag identifies a canonical metadata field.
type Tag int

const (
	Title Tag = iota
	Subtitle
	Description
	AlbumArtists
	Performers
	PerformersRole
	Composers
	Album
	Comment
	Genres
	Year
	Track
	TrackCount
	Disc
	DiscCount
	BeatsPerMinute
	InitialKey
	Publisher
	ISRC
	RemixedBy
	Grouping
	Conductor
	Copyright
	Lyrics
	Length
	RecordingDate
	ReleaseDate
	OriginalReleaseDate
	Pictures

	numTags
)

// Shape classifies the structure of a tag's value.
type Shape int

const (
	ScalarText Shape = iota
	ScalarInt
	ScalarDate
	ScalarDuration
	ListText
	Binary
)

func (s Shape) String() string {
	switch s {
	case ScalarText:
		return "text"
	case ScalarInt:
		return "integer"
	case ScalarDate:
		return "date"
	case ScalarDuration:
		return "duration"
	case ListText:
		return "list"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// IsScalar reports whether s holds a single textual or numeric value.
func (s Shape) IsScalar() bool {
	return s == ScalarText || s == ScalarInt || s == ScalarDate || s == ScalarDuration
}

type entry struct {
	name  string
	shape Shape
	usage string
}

var catalog = [numTags]entry{
	Title:               {"Title", ScalarText, "Track title"},
	Subtitle:            {"Subtitle", ScalarText, "Subtitle or description refinement"},
	Description:         {"Description", ScalarText, "Free-form description"},
	AlbumArtists:        {"AlbumArtists", ListText, "Album artists, comma separated"},
	Performers:          {"Performers", ListText, "Track artists, comma separated"},
	PerformersRole:      {"PerformersRole", ListText, "Roles of the performers, comma separated"},
	Composers:           {"Composers", ListText, "Composers, comma separated"},
	Album:               {"Album", ScalarText, "Album title"},
	Comment:             {"Comment", ScalarText, "Comment"},
	Genres:              {"Genres", ListText, "Genres, comma separated"},
	Year:                {"Year", ScalarInt, "Release year"},
	Track:               {"Track", ScalarInt, "Track number"},
	TrackCount:          {"TrackCount", ScalarInt, "Number of tracks on the disc"},
	Disc:                {"Disc", ScalarInt, "Disc number"},
	DiscCount:           {"DiscCount", ScalarInt, "Number of discs"},
	BeatsPerMinute:      {"BeatsPerMinute", ScalarInt, "Tempo in BPM"},
	InitialKey:          {"InitialKey", ScalarText, "Musical key"},
	Publisher:           {"Publisher", ScalarText, "Publisher or label"},
	ISRC:                {"ISRC", ScalarText, "International Standard Recording Code"},
	RemixedBy:           {"RemixedBy", ScalarText, "Remixer"},
	Grouping:            {"Grouping", ScalarText, "Content group"},
	Conductor:           {"Conductor", ScalarText, "Conductor"},
	Copyright:           {"Copyright", ScalarText, "Copyright notice"},
	Lyrics:              {"Lyrics", ScalarText, "Unsynchronised lyrics"},
	Length:              {"Length", ScalarDuration, "Track length, [hh:]mm:ss"},
	RecordingDate:       {"RecordingDate", ScalarDate, "Recording date"},
	ReleaseDate:         {"ReleaseDate", ScalarDate, "Release date"},
	OriginalReleaseDate: {"OriginalReleaseDate", ScalarDate, "Original release date"},
	Pictures:            {"Pictures", Binary, "Attached pictures (not editable from text)"},
}

// Valid reports whether t belongs to the catalog.
func (t Tag) Valid() bool {
	return t >= 0 && t < numTags
}

// String returns the canonical name of t.
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return catalog[t].name
}

// Usage returns a short human-readable description of t.
func (t Tag) Usage() string {
	if !t.Valid() {
		return ""
	}
	return catalog[t].usage
}

// ShapeOf returns the value shape of t. Tags outside the catalog are reported as [ScalarText].
func ShapeOf(t Tag) Shape {
	if !t.Valid() {
		return ScalarText
	}
	return catalog[t].shape
}

// All returns every catalog tag in declaration order.
func All() []Tag {
	all := make([]Tag, 0, numTags)
	for t := Tag(0); t < numTags; t++ {
		all = append(all, t)
	}
	return all
}
