package tags

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateOrder selects how ambiguous numeric dates such as 03/04/2023 are read.
type DateOrder int

const (
	MonthFirst DateOrder = iota
	DayFirst
)

// ParseDateOrder parses the configuration spelling of a [DateOrder] ("mdy" or "dmy").
func ParseDateOrder(s string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mdy", "month_first":
		return MonthFirst, nil
	case "dmy", "day_first":
		return DayFirst, nil
	default:
		return MonthFirst, fmt.Errorf("unknown date order %q", s)
	}
}

// Locale holds the calendar rules used when parsing dates.
type Locale struct {
	DateOrder DateOrder
	Location  *time.Location
}

// Coercer converts raw strings into values of a tag's shape.
//
// The zero Coercer parses month-first dates in UTC.
type Coercer struct {
	Locale Locale
}

// NewCoercer returns a [Coercer] for the given locale.
func NewCoercer(l Locale) Coercer {
	return Coercer{Locale: l}
}

// Coerce converts raw with the default locale. See [Coercer.Coerce].
func Coerce(tag Tag, raw string) (Value, error) {
	return Coercer{}.Coerce(tag, raw)
}

// Coerce converts raw into the shape of tag.
//
// List tags never fail: raw is split on commas, trimmed, and empty items are dropped, so a
// cell with no comma becomes a one-element list. Binary tags always fail.
func (c Coercer) Coerce(tag Tag, raw string) (Value, error) {
	switch ShapeOf(tag) {
	case ScalarInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, &CoercionError{Tag: tag, Raw: raw, Kind: ErrNotAnInteger}
		}
		return Int(n), nil
	case ScalarDate:
		d, err := c.parseDate(raw)
		if err != nil {
			return Value{}, &CoercionError{Tag: tag, Raw: raw, Kind: ErrNotADate, Err: err}
		}
		return DateOf(d), nil
	case ScalarDuration:
		d, err := ParseDuration(raw)
		if err != nil {
			return Value{}, &CoercionError{Tag: tag, Raw: raw, Kind: ErrNotADuration, Err: err}
		}
		return Duration(d), nil
	case ListText:
		return List(SplitList(raw)...), nil
	case Binary:
		return Value{}, &CoercionError{Tag: tag, Raw: raw, Kind: ErrBinaryValue}
	default:
		return Text(raw), nil
	}
}

// CoerceList converts pre-split items into the shape of tag.
//
// A single item is coerced like a raw string. Several items become a list for list tags and
// are joined with ", " for text tags; any other shape receives the joined string and fails.
func (c Coercer) CoerceList(tag Tag, items []string) (Value, error) {
	if len(items) == 1 {
		return c.Coerce(tag, items[0])
	}
	if ShapeOf(tag) == ListText {
		var out []string
		for _, item := range items {
			out = append(out, SplitList(item)...)
		}
		return List(out...), nil
	}
	return c.Coerce(tag, strings.Join(items, ", "))
}

// SplitList splits raw on commas, trims every item and drops empty ones.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var isoLayouts = []struct {
	layout    string
	precision Precision
}{
	{"2006", PrecisionYear},
	{"2006-01", PrecisionMonth},
	{"2006-01-02", PrecisionDay},
	{"2006-01-02T15:04:05", PrecisionTime},
	{"2006-01-02T15:04", PrecisionTime},
	{time.RFC3339, PrecisionTime},
}

func (c Coercer) parseDate(raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, errors.New("empty date")
	}

	loc := c.Locale.Location
	if loc == nil {
		loc = time.UTC
	}

	for _, l := range isoLayouts {
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return Date{Time: t, Precision: l.precision}, nil
		}
	}

	t, err := dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(c.Locale.DateOrder == MonthFirst))
	if err != nil {
		return Date{}, err
	}

	precision := PrecisionDay
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
		precision = PrecisionTime
	}
	return Date{Time: t, Precision: precision}, nil
}

// ParseDuration parses [hh:]mm:ss[.fff], Go duration syntax such as "3m25s", or a plain number
// of seconds.
func ParseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty duration")
	}

	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, errors.New("negative duration")
		}
		return d, nil
	}

	secs, err := parseSeconds(s)
	if err != nil {
		return 0, fmt.Errorf("unrecognized duration %q", s)
	}
	return fromSeconds(secs)
}

// parseSeconds reads a non-negative, finite number of seconds.
func parseSeconds(s string) (float64, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("%q is not a number of seconds", s)
	}
	return secs, nil
}

// fromSeconds converts secs to a duration, failing when it does not fit a time.Duration.
func fromSeconds(secs float64) (time.Duration, error) {
	ns := secs * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("%gs is too long", secs)
	}
	return time.Duration(ns).Round(time.Millisecond), nil
}

// parseClock parses mm:ss or hh:mm:ss, where the seconds field may carry a fraction.
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("expected [hh:]mm:ss, got %q", s)
	}

	secs, err := parseSeconds(parts[len(parts)-1])
	if err != nil || secs >= 60 {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}

	mins, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	var hours int
	if len(parts) == 3 {
		if mins >= 60 {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
		hours, err = strconv.Atoi(parts[0])
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("invalid hours in %q", s)
		}
	}

	return fromSeconds(float64(hours)*3600 + float64(mins)*60 + secs)
}
