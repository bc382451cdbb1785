package editor

import (
	"fmt"
	"maps"

	"github.com/desertthunder/tagx/internal/tags"
)

// Family is a tag family with its own set of supported fields.
type Family int

const (
	FamilyID3v2 Family = iota
	FamilyID3v1
)

func (f Family) String() string {
	switch f {
	case FamilyID3v1:
		return "ID3v1"
	default:
		return "ID3v2"
	}
}

// Fields returns the fields a family stores and the shape it stores each one in.
//
// ID3v2 keeps several comment frames, so Comment is list-shaped there even though the catalog
// declares it as text. ID3v1 only has a handful of fixed fields.
func (f Family) Fields() map[tags.Tag]tags.Shape {
	switch f {
	case FamilyID3v1:
		return map[tags.Tag]tags.Shape{
			tags.Title:      tags.ScalarText,
			tags.Performers: tags.ListText,
			tags.Album:      tags.ScalarText,
			tags.Year:       tags.ScalarInt,
			tags.Comment:    tags.ScalarText,
			tags.Track:      tags.ScalarInt,
			tags.Genres:     tags.ListText,
		}
	default:
		fields := make(map[tags.Tag]tags.Shape)
		for _, t := range tags.All() {
			fields[t] = tags.ShapeOf(t)
		}
		fields[tags.Comment] = tags.ListText
		return fields
	}
}

// Record is an in-memory [Target]. It backs previews and tests, and is the reference for how a
// target treats its declared fields.
type Record struct {
	path   string
	family Family
	fields map[tags.Tag]tags.Shape
	values map[tags.Tag]tags.Value
	dirty  bool
}

// NewRecord returns an empty record for path with the fields of family.
func NewRecord(path string, family Family) *Record {
	return &Record{
		path:   path,
		family: family,
		fields: family.Fields(),
		values: make(map[tags.Tag]tags.Value),
	}
}

func (r *Record) Path() string   { return r.path }
func (r *Record) Family() Family { return r.family }

// Dirty reports whether any field was set since the record was created or last marked clean.
func (r *Record) Dirty() bool { return r.dirty }

// MarkClean resets [Record.Dirty].
func (r *Record) MarkClean() { r.dirty = false }

func (r *Record) FieldShape(tag tags.Tag) (tags.Shape, bool) {
	s, ok := r.fields[tag]
	return s, ok
}

func (r *Record) Get(tag tags.Tag) (tags.Value, bool) {
	v, ok := r.values[tag]
	return v, ok
}

// Set stores v for tag. The value must already have the declared shape of the field.
func (r *Record) Set(tag tags.Tag, v tags.Value) error {
	want, ok := r.fields[tag]
	if !ok {
		return &FieldError{Tag: tag, Err: ErrUnsupportedByTarget}
	}
	if v.Shape() != want {
		return &FieldError{Tag: tag, Err: fmt.Errorf("%w: field holds %s, got %s", ErrShapeMismatch, want, v.Shape())}
	}
	r.values[tag] = v
	r.dirty = true
	return nil
}

// Supported returns the tags the record stores, in catalog order.
func (r *Record) Supported() []tags.Tag {
	var out []tags.Tag
	for _, t := range tags.All() {
		if _, ok := r.fields[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Values returns a snapshot of every set field.
func (r *Record) Values() map[tags.Tag]tags.Value {
	return maps.Clone(r.values)
}
