package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/importer"
	"github.com/desertthunder/tagx/internal/repositories"
	"github.com/desertthunder/tagx/internal/shared"
	"github.com/desertthunder/tagx/internal/tags"
	"github.com/desertthunder/tagx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Edit sets one tag on every file at path and saves the files that changed.
//
// A missing --tag or --value is read from the input, asking again until the answer can be used.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	files, err := r.loadFiles(ctx, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	defer r.closeFiles(files)

	dryRun := cmd.Bool("dry-run")
	engine, recorder, err := r.newEngine(false, !dryRun)
	if err != nil {
		return err
	}

	tag, raw, err := r.editArgs(cmd, engine.Coordinator().Coercer())
	if err != nil {
		return err
	}

	opts := tasks.EditOpts{Append: cmd.Bool("append")}
	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}

	report, err := engine.Edit(ctx, nil, tasks.AsFiles(files), tag.String(), raw, opts)
	if report != nil {
		r.writePlain("%s: %s\n", tag, report.Summary())
	}
	if err != nil {
		return err
	}

	return r.finish(ctx, cmd, engine, recorder, tasks.AsFiles(files), report)
}

// Import writes the rows of --source to the files at path, matched in name order.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	delimiter, err := r.config.Import.DelimiterRune()
	if err != nil {
		return err
	}

	table, err := importer.Load(cmd.String("source"), importer.WithDelimiter(delimiter))
	if err != nil {
		return err
	}

	files, err := r.loadFiles(ctx, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	defer r.closeFiles(files)

	skipEmpty := r.config.Import.SkipEmpty
	if cmd.IsSet("skip-empty") {
		skipEmpty = cmd.Bool("skip-empty")
	}

	dryRun := cmd.Bool("dry-run")
	engine, recorder, err := r.newEngine(skipEmpty, !dryRun)
	if err != nil {
		return err
	}

	r.logger.Info("importing", "source", cmd.String("source"), "rows", len(table.Rows), "columns", strings.Join(table.Header, ", "))

	report, err := engine.Import(ctx, nil, tasks.AsFiles(files), table)
	if err != nil {
		return err
	}
	r.writePlain("%s\n", report.Summary())

	return r.finish(ctx, cmd, engine, recorder, tasks.AsFiles(files), report)
}

// finish saves the files of an edit or import unless --dry-run is set, then reports failed values.
func (r *Runner) finish(ctx context.Context, cmd *cli.Command, engine *tasks.TagEngine, recorder *repositories.HistoryRecorder, files []tasks.File, report *editor.Report) error {
	if cmd.Bool("dry-run") {
		r.writePlain("Dry run: no files written\n")
	} else if err := r.save(ctx, cmd, engine, files); err != nil {
		return err
	}

	if recorder != nil {
		recorded, failed := recorder.Counts()
		r.logger.Debug("history", "session", recorder.SessionID(), "recorded", recorded, "failed", failed)
	}

	if n := len(report.Failures()); n > 0 {
		return fmt.Errorf("%w: %d values", shared.ErrEditFailed, n)
	}
	return nil
}

// editArgs returns the tag and raw value for an edit from flags, prompting for the missing ones.
//
// A --tag that does not resolve is an error; a typed tag name that does not resolve, or a typed
// value the tag cannot take, is asked for again.
func (r *Runner) editArgs(cmd *cli.Command, coercer tags.Coercer) (tags.Tag, string, error) {
	in := bufio.NewScanner(r.input)

	var tag tags.Tag
	if name := cmd.String("tag"); name != "" {
		t, err := tags.Resolve(name)
		if err != nil {
			return 0, "", err
		}
		tag = t
	} else {
		t, err := r.promptTag(in)
		if err != nil {
			return 0, "", err
		}
		tag = t
	}

	if cmd.IsSet("value") {
		return tag, cmd.String("value"), nil
	}

	raw, err := r.promptValue(in, coercer, tag)
	if err != nil {
		return 0, "", err
	}
	return tag, raw, nil
}

func (r *Runner) promptTag(in *bufio.Scanner) (tags.Tag, error) {
	for {
		r.writePlain("Tag: ")
		if !in.Scan() {
			return 0, r.promptEnded(in, "tag")
		}
		tag, err := tags.Resolve(in.Text())
		if err != nil {
			r.writePlain("  ✗ %v (run 'tagx tags' for the list)\n", err)
			continue
		}
		return tag, nil
	}
}

func (r *Runner) promptValue(in *bufio.Scanner, coercer tags.Coercer, tag tags.Tag) (string, error) {
	for {
		r.writePlain("%s (%s): ", tag, tags.ShapeOf(tag))
		if !in.Scan() {
			return "", r.promptEnded(in, "value")
		}
		raw := in.Text()
		if _, err := coercer.Coerce(tag, raw); err != nil {
			r.writePlain("  ✗ %v\n", err)
			continue
		}
		return raw, nil
	}
}

func (r *Runner) promptEnded(in *bufio.Scanner, what string) error {
	if err := in.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", what, err)
	}
	return fmt.Errorf("%w: %s", shared.ErrMissingArgument, what)
}
