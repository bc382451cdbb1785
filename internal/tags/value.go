package tags

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Precision records how much of a [Date] was supplied.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionTime
)

// Date is a calendar date that remembers its precision, so "2023" is not widened to "2023-01-01".
type Date struct {
	Time      time.Time
	Precision Precision
}

// String formats d as an ID3v2.4 timestamp truncated to its precision.
func (d Date) String() string {
	switch d.Precision {
	case PrecisionYear:
		return d.Time.Format("2006")
	case PrecisionMonth:
		return d.Time.Format("2006-01")
	case PrecisionDay:
		return d.Time.Format("2006-01-02")
	default:
		return d.Time.Format("2006-01-02T15:04:05")
	}
}

// Blob is an opaque binary attachment such as an embedded picture.
type Blob struct {
	MIMEType    string
	Description string
	Data        []byte
}

// Value is a tagged union holding exactly one payload, selected by its [Shape].
//
// The zero Value is an empty [ScalarText].
type Value struct {
	shape Shape
	text  string
	num   int
	date  Date
	dur   time.Duration
	list  []string
	blobs []Blob
}

// Text returns a [ScalarText] value.
func Text(s string) Value { return Value{shape: ScalarText, text: s} }

// Int returns a [ScalarInt] value.
func Int(n int) Value { return Value{shape: ScalarInt, num: n} }

// DateOf returns a [ScalarDate] value.
func DateOf(d Date) Value { return Value{shape: ScalarDate, date: d} }

// Duration returns a [ScalarDuration] value.
func Duration(d time.Duration) Value { return Value{shape: ScalarDuration, dur: d} }

// List returns a [ListText] value holding a copy of items.
func List(items ...string) Value {
	return Value{shape: ListText, list: slices.Clone(items)}
}

// Blobs returns a [Binary] value holding a copy of b.
func Blobs(b ...Blob) Value {
	return Value{shape: Binary, blobs: slices.Clone(b)}
}

func (v Value) Shape() Shape { return v.shape }

// AsText returns the payload of a [ScalarText] value, or "" for any other shape.
func (v Value) AsText() string {
	if v.shape != ScalarText {
		return ""
	}
	return v.text
}

// AsInt returns the payload of a [ScalarInt] value, or 0 for any other shape.
func (v Value) AsInt() int {
	if v.shape != ScalarInt {
		return 0
	}
	return v.num
}

// AsDate returns the payload of a [ScalarDate] value.
func (v Value) AsDate() Date {
	if v.shape != ScalarDate {
		return Date{}
	}
	return v.date
}

// AsDuration returns the payload of a [ScalarDuration] value.
func (v Value) AsDuration() time.Duration {
	if v.shape != ScalarDuration {
		return 0
	}
	return v.dur
}

// AsList returns a copy of the items of a [ListText] value.
func (v Value) AsList() []string {
	if v.shape != ListText {
		return nil
	}
	return slices.Clone(v.list)
}

// AsBlobs returns a copy of the attachments of a [Binary] value.
func (v Value) AsBlobs() []Blob {
	if v.shape != Binary {
		return nil
	}
	return slices.Clone(v.blobs)
}

// String renders v in the same syntax the coercer accepts, so rendered values can be re-imported.
func (v Value) String() string {
	switch v.shape {
	case ScalarInt:
		return strconv.Itoa(v.num)
	case ScalarDate:
		return v.date.String()
	case ScalarDuration:
		return FormatDuration(v.dur)
	case ListText:
		return strings.Join(v.list, ", ")
	case Binary:
		if len(v.blobs) == 1 {
			return "1 attachment"
		}
		return fmt.Sprintf("%d attachments", len(v.blobs))
	default:
		return v.text
	}
}

// Equal reports whether v and o have the same shape and payload.
func (v Value) Equal(o Value) bool {
	if v.shape != o.shape {
		return false
	}
	switch v.shape {
	case ScalarInt:
		return v.num == o.num
	case ScalarDate:
		return v.date.Precision == o.date.Precision && v.date.Time.Equal(o.date.Time)
	case ScalarDuration:
		return v.dur == o.dur
	case ListText:
		return slices.Equal(v.list, o.list)
	case Binary:
		return slices.EqualFunc(v.blobs, o.blobs, func(a, b Blob) bool {
			return a.MIMEType == b.MIMEType && a.Description == b.Description && bytes.Equal(a.Data, b.Data)
		})
	default:
		return v.text == o.text
	}
}

// FormatDuration renders d as mm:ss, or h:mm:ss when it spans an hour, with milliseconds when present.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	ms := int(d % time.Second / time.Millisecond)

	var out string
	if h > 0 {
		out = fmt.Sprintf("%d:%02d:%02d", h, m, s)
	} else {
		out = fmt.Sprintf("%02d:%02d", m, s)
	}
	if ms > 0 {
		out += fmt.Sprintf(".%03d", ms)
	}
	return out
}
