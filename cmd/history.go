package main

import (
	"context"
	"path/filepath"

	"github.com/desertthunder/tagx/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// History lists recorded edits, newest first, filtered by --path and --session.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.history()
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	path := cmd.String("path")
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	session := cmd.String("session")

	var edits []*models.Edit
	switch {
	case path != "" && session != "":
		edits, err = repo.List(map[string]any{"path": path, "session_id": session, "limit": limit})
	case path != "":
		edits, err = repo.ListByPath(path)
	case session != "":
		edits, err = repo.ListBySession(session)
	default:
		edits, err = repo.ListRecent(limit)
	}
	if err != nil {
		return err
	}
	if limit > 0 && len(edits) > limit {
		edits = edits[:limit]
	}

	if len(edits) == 0 {
		return r.writePlain("No edits recorded\n")
	}

	r.writePlainHeader("History")
	for _, e := range edits {
		old, ok := e.OldValue()
		if !ok {
			old = "(unset)"
		}
		r.writePlain("#%-5d %-14s %s\n", e.Sequence(), humanize.Time(e.CreatedAt()), e.Path())
		r.writePlain("       %s: %q → %q  [%s]\n", e.Tag(), old, e.NewValue(), e.SessionID())
	}
	return nil
}
