package tags

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTag = errors.New("unknown tag")

	// Coercion failure kinds
	ErrNotAnInteger = errors.New("not an integer")
	ErrNotADate     = errors.New("not a date")
	ErrNotADuration = errors.New("not a duration")
	ErrBinaryValue  = errors.New("binary and not settable from text")
)

// UnknownTagError reports a tag name that does not resolve to any catalog entry.
type UnknownTagError struct {
	Raw string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %q", e.Raw)
}

func (e *UnknownTagError) Unwrap() error { return ErrUnknownTag }

// CoercionError reports a raw value that cannot be converted to its tag's shape.
//
// Kind is one of the coercion sentinels ([ErrNotAnInteger], [ErrNotADate], [ErrNotADuration],
// [ErrBinaryValue]) so callers can match it with [errors.Is].
type CoercionError struct {
	Tag  Tag
	Raw  string
	Kind error
	Err  error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q is %v: %v", e.Tag, e.Raw, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %q is %v", e.Tag, e.Raw, e.Kind)
}

func (e *CoercionError) Unwrap() error { return e.Kind }
