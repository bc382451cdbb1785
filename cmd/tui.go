package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagx/internal/shared"
	"github.com/desertthunder/tagx/internal/tasks"
	"github.com/desertthunder/tagx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive tag editor on the files at path.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	files, err := r.loadFiles(ctx, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	defer r.closeFiles(files)

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tagx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.logger = fileLogger

	engine, _, err := r.newEngine(false, true)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, engine, tasks.AsFiles(files), r.saveOpts(cmd))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
