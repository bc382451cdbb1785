// Package tags defines the tag catalog and the conversion of free-form input into typed tag values.
//
// # Catalog
//
// [Tag] is a closed set of canonical metadata fields. Every tag has exactly one [Shape]
// (text, integer, date, duration, list of text, or binary) returned by [ShapeOf]. The shape, not
// the tag, drives coercion: a new tag only needs a catalog entry.
//
// # Resolution
//
// [Resolve] accepts names typed by users or read from import headers ("album artists",
// "ALBUM-ARTISTS", "AlbumArtists") and maps them onto a [Tag], failing with [*UnknownTagError]
// rather than guessing.
//
// # Coercion
//
// [Coercer.Coerce] converts a raw string into a [Value] of the tag's shape. List tags split on
// commas and never fail, so a single spreadsheet cell becomes a one-element list. Failures are
// reported as [*CoercionError] whose Kind matches [ErrNotAnInteger], [ErrNotADate],
// [ErrNotADuration] or [ErrBinaryValue].
//
// Nothing in this package holds state between calls; it is safe for concurrent use.
package tags
