package editor

import (
	"fmt"

	"github.com/desertthunder/tagx/internal/tags"
)

// Apply replaces the value of tag on t.
//
// A list field receives the whole new list; nothing is merged with existing entries. When the
// field is list-shaped and v is a scalar, v is stored as a one-element list, which absorbs
// fields whose native shape differs from the catalog. Every other shape mismatch fails with
// [ErrShapeMismatch], and tags the target does not store fail with [ErrUnsupportedByTarget].
func Apply(t Target, tag tags.Tag, v tags.Value) error {
	want, ok := t.FieldShape(tag)
	if !ok {
		return &ApplyError{Kind: ErrUnsupportedByTarget, Path: t.Path(), Tag: tag}
	}

	fitted, ok := fit(want, v)
	if !ok {
		return &ApplyError{
			Kind:   ErrShapeMismatch,
			Path:   t.Path(),
			Tag:    tag,
			Detail: fmt.Sprintf("field holds %s, got %s", want, v.Shape()),
		}
	}

	if err := t.Set(tag, fitted); err != nil {
		return fmt.Errorf("%s: %w", t.Path(), err)
	}
	return nil
}

// Append adds the items of v to the end of a list field. It is the only merging mutation; [Apply]
// always replaces.
func Append(t Target, tag tags.Tag, v tags.Value) error {
	want, ok := t.FieldShape(tag)
	if !ok {
		return &ApplyError{Kind: ErrUnsupportedByTarget, Path: t.Path(), Tag: tag}
	}
	if want != tags.ListText {
		return &ApplyError{
			Kind:   ErrShapeMismatch,
			Path:   t.Path(),
			Tag:    tag,
			Detail: fmt.Sprintf("append needs a list field, field holds %s", want),
		}
	}

	fitted, ok := fit(want, v)
	if !ok {
		return &ApplyError{
			Kind:   ErrShapeMismatch,
			Path:   t.Path(),
			Tag:    tag,
			Detail: fmt.Sprintf("field holds %s, got %s", want, v.Shape()),
		}
	}

	var items []string
	if cur, ok := t.Get(tag); ok {
		items = cur.AsList()
	}
	items = append(items, fitted.AsList()...)

	if err := t.Set(tag, tags.List(items...)); err != nil {
		return fmt.Errorf("%s: %w", t.Path(), err)
	}
	return nil
}

// fit converts v to the field shape want, if the two are compatible.
func fit(want tags.Shape, v tags.Value) (tags.Value, bool) {
	switch {
	case v.Shape() == want:
		return v, true
	case want == tags.ListText && v.Shape().IsScalar():
		return tags.List(v.String()), true
	default:
		return tags.Value{}, false
	}
}
