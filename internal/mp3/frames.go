package mp3

import (
	"github.com/desertthunder/tagx/internal/tags"
)

// frameKind selects how a tag is stored in ID3v2 frames.
type frameKind int

const (
	textFrame     frameKind = iota // a single text frame
	listFrame                      // a text frame holding several values
	numberFrame                    // a text frame holding a decimal number
	pairFrame                      // the "n/total" halves of TRCK and TPOS
	dateFrame                      // an ID3v2.4 timestamp
	lengthFrame                    // TLEN, milliseconds
	commentFrames                  // one COMM frame per value
	lyricsFrame                    // USLT
	pictureFrames                  // one APIC frame per attachment
)

// frame describes where a tag lives. v23 is the ID3v2.3 frame ID; an empty v23 means the frame
// only exists in ID3v2.4.
type frame struct {
	v24   string
	v23   string
	kind  frameKind
	shape tags.Shape
	total bool // pairFrame: the part after the slash
}

var frames = map[tags.Tag]frame{
	tags.Title:               {"TIT2", "TIT2", textFrame, tags.ScalarText, false},
	tags.Subtitle:            {"TIT3", "TIT3", textFrame, tags.ScalarText, false},
	tags.AlbumArtists:        {"TPE2", "TPE2", listFrame, tags.ListText, false},
	tags.Performers:          {"TPE1", "TPE1", listFrame, tags.ListText, false},
	tags.Composers:           {"TCOM", "TCOM", listFrame, tags.ListText, false},
	tags.Album:               {"TALB", "TALB", textFrame, tags.ScalarText, false},
	tags.Comment:             {"COMM", "COMM", commentFrames, tags.ListText, false},
	tags.Genres:              {"TCON", "TCON", listFrame, tags.ListText, false},
	tags.Year:                {"TDRC", "TYER", numberFrame, tags.ScalarInt, false},
	tags.Track:               {"TRCK", "TRCK", pairFrame, tags.ScalarInt, false},
	tags.TrackCount:          {"TRCK", "TRCK", pairFrame, tags.ScalarInt, true},
	tags.Disc:                {"TPOS", "TPOS", pairFrame, tags.ScalarInt, false},
	tags.DiscCount:           {"TPOS", "TPOS", pairFrame, tags.ScalarInt, true},
	tags.BeatsPerMinute:      {"TBPM", "TBPM", numberFrame, tags.ScalarInt, false},
	tags.InitialKey:          {"TKEY", "TKEY", textFrame, tags.ScalarText, false},
	tags.Publisher:           {"TPUB", "TPUB", textFrame, tags.ScalarText, false},
	tags.ISRC:                {"TSRC", "TSRC", textFrame, tags.ScalarText, false},
	tags.RemixedBy:           {"TPE4", "TPE4", textFrame, tags.ScalarText, false},
	tags.Grouping:            {"TIT1", "TIT1", textFrame, tags.ScalarText, false},
	tags.Conductor:           {"TPE3", "TPE3", textFrame, tags.ScalarText, false},
	tags.Copyright:           {"TCOP", "TCOP", textFrame, tags.ScalarText, false},
	tags.Lyrics:              {"USLT", "USLT", lyricsFrame, tags.ScalarText, false},
	tags.Length:              {"TLEN", "TLEN", lengthFrame, tags.ScalarDuration, false},
	tags.RecordingDate:       {"TDRC", "", dateFrame, tags.ScalarDate, false},
	tags.ReleaseDate:         {"TDRL", "", dateFrame, tags.ScalarDate, false},
	tags.OriginalReleaseDate: {"TDOR", "", dateFrame, tags.ScalarDate, false},
	tags.Pictures:            {"APIC", "APIC", pictureFrames, tags.Binary, false},
}

// id returns the frame ID for the given ID3v2 major version, or "" when the version has no such
// frame.
func (f frame) id(version byte) string {
	if version == 3 {
		return f.v23
	}
	return f.v24
}
