package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tagx/internal/editor"
)

// Edit records one tag value written to one file.
//
// Values are stored in their rendered form, the same text the coercer accepts, so an edit can be
// replayed by feeding OldValue back through the editor.
type Edit struct {
	id        string
	sequence  int
	sessionID string
	path      string
	tag       string
	oldValue  string
	hadOld    bool
	newValue  string
	createdAt time.Time
}

// NewEdit creates an unsaved Edit. The repository assigns its ID and sequence.
func NewEdit(sessionID, path, tag string, oldValue *string, newValue string) *Edit {
	e := &Edit{
		sessionID: sessionID,
		path:      path,
		tag:       tag,
		newValue:  newValue,
		createdAt: time.Now().UTC(),
	}
	if oldValue != nil {
		e.oldValue = *oldValue
		e.hadOld = true
	}
	return e
}

// EditFromChange builds the Edit for a change observed by the editor.
func EditFromChange(sessionID string, c editor.Change) *Edit {
	var old *string
	if c.HadOld {
		s := c.Old.String()
		old = &s
	}
	return NewEdit(sessionID, c.Path, c.Tag.String(), old, c.New.String())
}

func (e *Edit) ID() string           { return e.id }
func (e *Edit) Sequence() int        { return e.sequence }
func (e *Edit) SessionID() string    { return e.sessionID }
func (e *Edit) Path() string         { return e.path }
func (e *Edit) Tag() string          { return e.tag }
func (e *Edit) NewValue() string     { return e.newValue }
func (e *Edit) CreatedAt() time.Time { return e.createdAt }

// OldValue returns the value the file held before the edit, or false when the tag was unset.
func (e *Edit) OldValue() (string, bool) { return e.oldValue, e.hadOld }

func (e *Edit) SetID(id string)          { e.id = id }
func (e *Edit) SetSequence(n int)        { e.sequence = n }
func (e *Edit) SetCreatedAt(t time.Time) { e.createdAt = t }

func (e *Edit) String() string {
	old := e.oldValue
	if !e.hadOld {
		old = "(unset)"
	}
	return fmt.Sprintf("%s %s: %s -> %s", e.path, e.tag, old, e.newValue)
}

// Validate requires a session, a path and a tag name.
func (e *Edit) Validate() error {
	switch {
	case e.sessionID == "":
		return errors.New("session ID is required")
	case e.path == "":
		return errors.New("path is required")
	case e.tag == "":
		return errors.New("tag is required")
	}
	return nil
}
