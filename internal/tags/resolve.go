package tags

import (
	"strings"
	"unicode"
)

// aliases maps normalized spellings that are not canonical names onto catalog tags.
//
// Title-casing folds acronyms ("ISRC" normalizes to "Isrc"), and common singular or
// short forms are accepted from import headers exported by other tag editors. A name that could
// mean more than one tag, such as "Date", has no alias.
var aliases = map[string]Tag{
	"Isrc":        ISRC,
	"Bpm":         BeatsPerMinute,
	"Tempo":       BeatsPerMinute,
	"Artist":      Performers,
	"Artists":     Performers,
	"Performer":   Performers,
	"AlbumArtist": AlbumArtists,
	"Composer":    Composers,
	"Genre":       Genres,
	"TrackNumber": Track,
	"TrackTotal":  TrackCount,
	"DiscNumber":  Disc,
	"DiscTotal":   DiscCount,
	"Key":         InitialKey,
	"Label":       Publisher,
	"Remixer":     RemixedBy,
	"Duration":    Length,
	"Picture":     Pictures,
	"Cover":       Pictures,
}

var byName = func() map[string]Tag {
	m := make(map[string]Tag, int(numTags)+len(aliases))
	for _, t := range All() {
		m[t.String()] = t
	}
	for name, t := range aliases {
		m[name] = t
	}
	return m
}()

// Resolve maps a free-form tag name onto a catalog tag.
//
// "album artists", "Album_Artists", "ALBUM-ARTISTS" and "albumArtists" all resolve to
// [AlbumArtists]. Matching is exact after normalization, against the canonical names and the
// alias table; names that match nothing fail with [*UnknownTagError].
func Resolve(raw string) (Tag, error) {
	if t, ok := byName[Normalize(raw)]; ok {
		return t, nil
	}
	return 0, &UnknownTagError{Raw: raw}
}

// Normalize converts raw into PascalCase: it splits on runs of characters that are not letters
// or digits and on lower-to-upper case transitions, title-cases each word and concatenates them.
func Normalize(raw string) string {
	var b strings.Builder
	for _, word := range words(raw) {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToTitle(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// words splits s into alphanumeric words.
func words(s string) []string {
	var (
		out     []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if i > 0 && startsWord(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()

	return out
}

// startsWord reports whether the rune at i begins a new CamelCase word, e.g. the "A" in
// "albumArtists" or the "P" in "BPMParser".
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}
	if unicode.IsLower(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
