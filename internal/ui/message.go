package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEditApplied MsgKind = iota
	MsgProgressUpdate
	MsgSaveComplete
)

type editApplied struct {
	report *editor.Report
	err    error
}

type saveComplete struct {
	result *tasks.SaveResult
	err    error
}

// editAppliedMsg is the constructor for [MsgEditApplied]
func editAppliedMsg(report *editor.Report, err error) Msg {
	return Msg{kind: MsgEditApplied, data: editApplied{report, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// saveCompleteMsg is the constructor for [MsgSaveComplete]
func saveCompleteMsg(result *tasks.SaveResult, err error) Msg {
	return Msg{kind: MsgSaveComplete, data: saveComplete{result, err}}
}
