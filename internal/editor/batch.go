package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tagx/internal/tags"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of writing one value into one target. Column is -1 for single-tag
// batches.
type Outcome struct {
	Target  int
	Column  int
	Path    string
	Tag     tags.Tag
	Raw     string
	Skipped bool
	Err     error
}

// OK reports whether the value was written or deliberately skipped.
func (o Outcome) OK() bool { return o.Err == nil }

// Change describes a field that was written.
type Change struct {
	Path   string
	Tag    tags.Tag
	Old    tags.Value
	HadOld bool
	New    tags.Value
}

// ChangeFunc observes successful writes. It may be called from several goroutines by
// [Coordinator.ApplyToAllParallel].
type ChangeFunc func(Change)

// Report collects the outcomes of a batch, in target order and then column order.
type Report struct {
	Outcomes []Outcome
}

// Succeeded counts outcomes that wrote a value.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() && !o.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts empty cells left untouched.
func (r *Report) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// Failures returns every failed outcome.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// At returns the outcome for a target row and column.
func (r *Report) At(target, column int) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Target == target && o.Column == column {
			return o, true
		}
	}
	return Outcome{}, false
}

// Touched returns the indexes of targets that received at least one value.
func (r *Report) Touched() []int {
	var out []int
	seen := make(map[int]bool)
	for _, o := range r.Outcomes {
		if o.OK() && !o.Skipped && !seen[o.Target] {
			seen[o.Target] = true
			out = append(out, o.Target)
		}
	}
	return out
}

// Summary renders "N of M succeeded" followed by one line per failure.
func (r *Report) Summary() string {
	var b strings.Builder
	attempted := len(r.Outcomes) - r.Skipped()
	fmt.Fprintf(&b, "%d of %d succeeded", r.Succeeded(), attempted)
	if n := r.Skipped(); n > 0 {
		fmt.Fprintf(&b, " (%d empty skipped)", n)
	}

	failures := r.Failures()
	if len(failures) == 0 {
		return b.String()
	}
	b.WriteString(", failures:")
	for _, f := range failures {
		if f.Column >= 0 {
			fmt.Fprintf(&b, "\n  row %d, column %d (%s): %v", f.Target+1, f.Column+1, f.Path, f.Err)
		} else {
			fmt.Fprintf(&b, "\n  %s: %v", f.Path, f.Err)
		}
	}
	return b.String()
}

// Coordinator applies tag values across ordered collections of targets.
//
// It holds configuration only; every call works on the targets passed to it.
type Coordinator struct {
	coercer   tags.Coercer
	onChange  ChangeFunc
	skipEmpty bool
}

// Option configures a [Coordinator].
type Option func(*Coordinator)

// WithCoercer sets the coercer used for raw values.
func WithCoercer(c tags.Coercer) Option {
	return func(co *Coordinator) { co.coercer = c }
}

// WithChangeFunc registers fn to observe every successful write.
func WithChangeFunc(fn ChangeFunc) Option {
	return func(co *Coordinator) { co.onChange = fn }
}

// WithSkipEmpty leaves targets untouched for empty import cells instead of writing an empty value.
func WithSkipEmpty() Option {
	return func(co *Coordinator) { co.skipEmpty = true }
}

// NewCoordinator returns a [Coordinator] configured by opts.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Coercer returns the coercer used for raw values.
func (c *Coordinator) Coercer() tags.Coercer { return c.coercer }

// Edit resolves name and applies raw to every target. An unknown name is returned directly since
// no target can be processed without it.
func (c *Coordinator) Edit(targets []Target, name, raw string) (*Report, error) {
	tag, err := tags.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &Report{Outcomes: c.ApplyToAll(targets, tag, raw)}, nil
}

// ApplyToAll coerces raw once and applies it to each target in order. A failure on one target
// does not stop the rest; a coercion failure is reported for every target.
func (c *Coordinator) ApplyToAll(targets []Target, tag tags.Tag, raw string) []Outcome {
	v, err := c.coercer.Coerce(tag, raw)
	return c.applyValue(targets, tag, raw, v, err, Apply)
}

// ApplyValue applies an already coerced value to each target in order.
func (c *Coordinator) ApplyValue(targets []Target, tag tags.Tag, v tags.Value) []Outcome {
	return c.applyValue(targets, tag, v.String(), v, nil, Apply)
}

// AppendToAll coerces raw once and appends it to the list field of each target.
func (c *Coordinator) AppendToAll(targets []Target, tag tags.Tag, raw string) []Outcome {
	v, err := c.coercer.Coerce(tag, raw)
	return c.applyValue(targets, tag, raw, v, err, Append)
}

type writeFunc func(Target, tags.Tag, tags.Value) error

func (c *Coordinator) applyValue(targets []Target, tag tags.Tag, raw string, v tags.Value, coerceErr error, write writeFunc) []Outcome {
	outcomes := make([]Outcome, len(targets))
	for i, t := range targets {
		outcomes[i] = Outcome{Target: i, Column: -1, Path: t.Path(), Tag: tag, Raw: raw, Err: coerceErr}
		if coerceErr == nil {
			outcomes[i].Err = c.write(t, tag, v, write)
		}
	}
	return outcomes
}

// ApplyToAllParallel is [Coordinator.ApplyToAll] with each target written by its own goroutine,
// at most workers at a time (no limit when workers <= 0). Targets must be distinct.
//
// Cancelling ctx stops targets that have not started; their outcomes carry the context error,
// which is also returned.
func (c *Coordinator) ApplyToAllParallel(ctx context.Context, targets []Target, tag tags.Tag, raw string, workers int) ([]Outcome, error) {
	v, err := c.coercer.Coerce(tag, raw)
	if err != nil {
		return c.applyValue(targets, tag, raw, v, err, Apply), nil
	}

	outcomes := make([]Outcome, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, t := range targets {
		outcomes[i] = Outcome{Target: i, Column: -1, Path: t.Path(), Tag: tag, Raw: raw}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return err
			}
			outcomes[i].Err = c.write(t, tag, v, Apply)
			return nil
		})
	}

	return outcomes, g.Wait()
}

// ApplyTable applies one row of table to each target, matched by position.
//
// The table is validated before any target is touched: a row count that differs from the target
// count fails with [ErrRowCountMismatch], and a row narrower or wider than the header with
// [ErrRowWidthMismatch]. After that every cell is attempted, left to right and row by row; a bad
// header name or value fails only its own cells. A nil table holds no rows.
func (c *Coordinator) ApplyTable(targets []Target, table *Table) (*Report, error) {
	if table == nil {
		table = &Table{}
	}
	if err := table.Validate(len(targets)); err != nil {
		return nil, err
	}

	columns := make([]tags.Tag, len(table.Header))
	columnErrs := make([]error, len(table.Header))
	for j, name := range table.Header {
		columns[j], columnErrs[j] = tags.Resolve(name)
	}

	report := &Report{Outcomes: make([]Outcome, 0, len(targets)*len(table.Header))}
	for i, t := range targets {
		for j, raw := range table.Rows[i] {
			o := Outcome{Target: i, Column: j, Path: t.Path(), Tag: columns[j], Raw: raw}
			switch {
			case columnErrs[j] != nil:
				o.Err = columnErrs[j]
			case c.skipEmpty && strings.TrimSpace(raw) == "":
				o.Skipped = true
			default:
				o.Err = c.applyCell(t, columns[j], raw, table.Items[Cell{Row: i, Column: j}])
			}
			report.Outcomes = append(report.Outcomes, o)
		}
	}

	return report, nil
}

func (c *Coordinator) applyCell(t Target, tag tags.Tag, raw string, items []string) error {
	var (
		v   tags.Value
		err error
	)
	if items != nil {
		v, err = c.coercer.CoerceList(tag, items)
	} else {
		v, err = c.coercer.Coerce(tag, raw)
	}
	if err != nil {
		return err
	}
	return c.write(t, tag, v, Apply)
}

func (c *Coordinator) write(t Target, tag tags.Tag, v tags.Value, write writeFunc) error {
	old, hadOld := t.Get(tag)
	if err := write(t, tag, v); err != nil {
		return err
	}

	if c.onChange != nil {
		stored, _ := t.Get(tag)
		c.onChange(Change{Path: t.Path(), Tag: tag, Old: old, HadOld: hadOld, New: stored})
	}
	return nil
}
