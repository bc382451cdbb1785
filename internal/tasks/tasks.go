// package tasks runs tag edits, imports and saves across many files.
//
// The core abstraction is TagEngine, which drives the editor over loaded files and writes them back.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/mp3"
	"github.com/desertthunder/tagx/internal/shared"
	"github.com/desertthunder/tagx/internal/tags"
)

// File is an editable audio file that can be written back to disk.
type File interface {
	editor.Target
	Dirty() bool
	Save(opts ...mp3.Option) error
}

// AsFiles widens a slice of concrete files.
func AsFiles[F File](fs []F) []File {
	out := make([]File, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// Targets returns files as editor targets, in the same order.
func Targets(files []File) []editor.Target {
	out := make([]editor.Target, len(files))
	for i, f := range files {
		out[i] = f
	}
	return out
}

// EngineOpts configures a [TagEngine].
type EngineOpts struct {
	Locale    tags.Locale       // Calendar rules for dates
	SkipEmpty bool              // Leave tags untouched for empty import cells
	OnChange  editor.ChangeFunc // Observer for every written value, e.g. the edit history
	Logger    *log.Logger
}

// EditOpts configures a single-tag edit.
type EditOpts struct {
	Append  bool // Add items to a list tag instead of replacing it
	Workers int  // Files written concurrently; 0 or 1 writes them in order
}

// TagEngine applies tag values to files and saves them.
type TagEngine struct {
	coord  *editor.Coordinator
	logger *log.Logger
}

// NewTagEngine creates a new TagEngine.
func NewTagEngine(opts EngineOpts) *TagEngine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	coordOpts := []editor.Option{editor.WithCoercer(tags.NewCoercer(opts.Locale))}
	if opts.OnChange != nil {
		coordOpts = append(coordOpts, editor.WithChangeFunc(opts.OnChange))
	}
	if opts.SkipEmpty {
		coordOpts = append(coordOpts, editor.WithSkipEmpty())
	}

	return &TagEngine{
		coord:  editor.NewCoordinator(coordOpts...),
		logger: opts.Logger,
	}
}

// Coordinator returns the engine's batch coordinator.
func (e *TagEngine) Coordinator() *editor.Coordinator { return e.coord }

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TagEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Edit resolves name and writes raw into that tag of every file.
//
// An unknown name is returned as an error before any file is touched. Per-file failures are
// reported in the returned [editor.Report]; the error is non-nil only when ctx is cancelled
// part-way through a parallel edit.
func (e *TagEngine) Edit(ctx context.Context, progress chan<- ProgressUpdate, files []File, name, raw string, opts EditOpts) (*editor.Report, error) {
	if len(files) == 0 {
		return nil, shared.ErrNoFiles
	}

	tag, err := tags.Resolve(name)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, resolvedTagUpdate(tag))
	e.logger.Debug("editing", "tag", tag, "raw", raw, "files", len(files), "append", opts.Append)

	targets := Targets(files)

	var outcomes []editor.Outcome
	switch {
	case opts.Append:
		outcomes = e.coord.AppendToAll(targets, tag, raw)
	case opts.Workers > 1:
		outcomes, err = e.coord.ApplyToAllParallel(ctx, targets, tag, raw, opts.Workers)
	default:
		outcomes = e.coord.ApplyToAll(targets, tag, raw)
	}

	report := e.report(progress, tag, outcomes)
	if err != nil {
		return report, fmt.Errorf("edit interrupted: %w", err)
	}
	return report, nil
}

// EditValue writes an already coerced value into tag of every file.
func (e *TagEngine) EditValue(progress chan<- ProgressUpdate, files []File, tag tags.Tag, v tags.Value) (*editor.Report, error) {
	if len(files) == 0 {
		return nil, shared.ErrNoFiles
	}

	e.sendProgress(progress, resolvedTagUpdate(tag))
	e.logger.Debug("editing", "tag", tag, "value", v, "files", len(files))

	return e.report(progress, tag, e.coord.ApplyValue(Targets(files), tag, v)), nil
}

func (e *TagEngine) report(progress chan<- ProgressUpdate, tag tags.Tag, outcomes []editor.Outcome) *editor.Report {
	for i, o := range outcomes {
		if o.Err != nil {
			e.logger.Warn("edit failed", "path", o.Path, "tag", tag, "error", o.Err)
		}
		e.sendProgress(progress, appliedUpdate(i+1, len(outcomes), o))
	}
	return &editor.Report{Outcomes: outcomes}
}

// Import applies one table row to each file, matched by position.
//
// A table that does not line up with files is rejected before any file is touched.
func (e *TagEngine) Import(ctx context.Context, progress chan<- ProgressUpdate, files []File, table *editor.Table) (*editor.Report, error) {
	if len(files) == 0 {
		return nil, shared.ErrNoFiles
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, importStartedUpdate(len(table.Rows), len(table.Header)))

	report, err := e.coord.ApplyTable(Targets(files), table)
	if err != nil {
		return nil, err
	}

	failures := make([]int, len(files))
	for _, o := range report.Failures() {
		failures[o.Target]++
		e.logger.Warn("import cell failed", "row", o.Target+1, "column", o.Column+1, "path", o.Path, "error", o.Err)
	}
	for i, f := range files {
		e.sendProgress(progress, importedRowUpdate(i+1, len(files), f.Path(), failures[i]))
	}
	e.logger.Info("import applied", "files", len(files), "changed", len(report.Touched()), "failures", len(report.Failures()))

	return report, nil
}
