package repositories

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/models"
)

// HistoryRecorder writes every change the editor reports to an [EditRepository] under one
// session ID.
//
// Recording is best-effort: a failed insert is logged and the edit itself still counts as applied.
type HistoryRecorder struct {
	repo      *EditRepository
	sessionID string
	logger    *log.Logger

	mu       sync.Mutex
	recorded int
	failed   int
}

// NewHistoryRecorder creates a recorder for sessionID. A nil logger discards failures silently.
func NewHistoryRecorder(repo *EditRepository, sessionID string, logger *log.Logger) *HistoryRecorder {
	return &HistoryRecorder{repo: repo, sessionID: sessionID, logger: logger}
}

// SessionID returns the session the recorder files edits under.
func (h *HistoryRecorder) SessionID() string { return h.sessionID }

// Record persists c. It is safe for concurrent use and matches [editor.ChangeFunc].
func (h *HistoryRecorder) Record(c editor.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.repo.Create(models.EditFromChange(h.sessionID, c)); err != nil {
		h.failed++
		if h.logger != nil {
			h.logger.Warn("failed to record edit", "path", c.Path, "tag", c.Tag, "error", err)
		}
		return
	}
	h.recorded++
}

// Counts returns how many changes were recorded and how many failed to record.
func (h *HistoryRecorder) Counts() (recorded, failed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recorded, h.failed
}
