package main

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/formatter"
	"github.com/desertthunder/tagx/internal/mp3"
	"github.com/desertthunder/tagx/internal/shared"
	"github.com/desertthunder/tagx/internal/tags"
	"github.com/urfave/cli/v3"
)

// Tags lists the tag catalog with the shape each tag takes.
func (r *Runner) Tags(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Tags")
	for _, t := range tags.All() {
		if err := r.writePlain("%-22s %-9s %s\n", t, tags.ShapeOf(t), t.Usage()); err != nil {
			return err
		}
	}
	return nil
}

// Show prints the tags of every file at path.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	files, err := r.loadFiles(ctx, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	defer r.closeFiles(files)

	if cmd.Bool("raw") {
		cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true, MaxDepth: 4}
		for _, f := range files {
			r.writePlain("%s (ID3v2.%d)\n", f.Path(), f.Version())
			for _, tv := range formatter.Values(f) {
				r.writePlain("%s ", tv.Tag)
				cfg.Fdump(r.output, tv.Value)
			}
		}
		return nil
	}

	data, err := formatter.ExportToText(targets(files))
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// Export writes the tags of every file at path as CSV, Markdown or text.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	delimiter, err := r.config.Import.DelimiterRune()
	if err != nil {
		return err
	}

	files, err := r.loadFiles(ctx, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	defer r.closeFiles(files)

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Export(targets(files), format, delimiter)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	if err := formatter.WriteExport(targets(files), format, output, delimiter); err != nil {
		return err
	}
	r.logger.Info("exported", "files", len(files), "format", format, "path", output)
	return r.writePlain("✓ Exported %d files to %s\n", len(files), output)
}

func targets(files []*mp3.File) []editor.Target {
	out := make([]editor.Target, len(files))
	for i, f := range files {
		out[i] = f
	}
	return out
}
