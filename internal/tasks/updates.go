package tasks

import (
	"fmt"
	"path/filepath"

	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/tags"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveTag Phase = iota
	ApplyValues
	ImportTable
	SaveFiles
)

func (p Phase) String() string {
	switch p {
	case ResolveTag:
		return "resolve_tag"
	case ApplyValues:
		return "apply_values"
	case ImportTable:
		return "import_table"
	case SaveFiles:
		return "save_files"
	default:
		return ""
	}
}

func resolvedTagUpdate(tag tags.Tag) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveTag,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Editing %s (%s)", tag, tags.ShapeOf(tag)),
		Data:    tag,
	}
}

func appliedUpdate(step, total int, o editor.Outcome) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, filepath.Base(o.Path))
	if o.Err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, filepath.Base(o.Path), o.Err)
	}
	return ProgressUpdate{
		Phase:   ApplyValues,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    o,
	}
}

func importStartedUpdate(rows, columns int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportTable,
		Step:    0,
		Total:   rows,
		Message: fmt.Sprintf("Importing %d rows of %d columns...", rows, columns),
	}
}

func importedRowUpdate(step, total int, path string, failures int) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, filepath.Base(path))
	if failures > 0 {
		msg = fmt.Sprintf("[%d/%d] ✗ %s (%d cells failed)", step, total, filepath.Base(path), failures)
	}
	return ProgressUpdate{
		Phase:   ImportTable,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}

func savingUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveFiles,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Saving %d files...", total),
	}
}

func savedUpdate(step, total int, res SaveFileResult) ProgressUpdate {
	var msg string
	switch {
	case res.Error != nil:
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, filepath.Base(res.Path), res.Error)
	case res.Skipped:
		msg = fmt.Sprintf("[%d/%d] - %s (unchanged)", step, total, filepath.Base(res.Path))
	default:
		msg = fmt.Sprintf("[%d/%d] ✓ %s", step, total, filepath.Base(res.Path))
	}
	return ProgressUpdate{
		Phase:   SaveFiles,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}
