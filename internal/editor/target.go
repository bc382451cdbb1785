package editor

import (
	"errors"
	"fmt"

	"github.com/desertthunder/tagx/internal/tags"
)

var (
	ErrUnsupportedByTarget = errors.New("tag not supported by target")
	ErrShapeMismatch       = errors.New("value shape does not match field")
	ErrRowCountMismatch    = errors.New("import rows do not match targets")
	ErrRowWidthMismatch    = errors.New("import row width does not match header")
)

// Target is one audio file's mutable metadata record.
//
// Targets are owned by the code that loaded them; the editor borrows them for the duration of a
// call and never persists them.
type Target interface {
	// Path identifies the target in reports.
	Path() string
	// FieldShape returns the shape the target stores for tag, or false when it has no such field.
	FieldShape(tag tags.Tag) (tags.Shape, bool)
	// Get returns the current value of tag, or false when it is unset.
	Get(tag tags.Tag) (tags.Value, bool)
	// Set replaces the value of tag.
	Set(tag tags.Tag, v tags.Value) error
}

// ApplyError reports a value that could not be written into a target, or an import table that
// cannot be aligned with its targets. Kind is one of the editor sentinel errors.
type ApplyError struct {
	Kind   error
	Path   string
	Tag    tags.Tag
	Detail string
}

func (e *ApplyError) Error() string {
	switch {
	case e.Path == "" && e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s: %v (%s)", e.Path, e.Tag, e.Kind, e.Detail)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Tag, e.Kind)
	}
}

func (e *ApplyError) Unwrap() error { return e.Kind }

// FieldError is returned by a [Target] whose Set rejects a value.
type FieldError struct {
	Tag tags.Tag
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("set %s: %v", e.Tag, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
