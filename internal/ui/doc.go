// Package ui implements an interactive tag editor using bubbletea's Elm architecture.
//
// The TUI walks through one edit at a time:
//  1. [TagListView] : Browse the tag catalog with the current value of the first file
//  2. [ValueInputView] : Type a value; a value that cannot be read for the tag re-prompts
//  3. [ResultView] : Show how many files took the value and why the others failed
//  4. [SaveView] : Monitor real-time progress while files are written
//  5. [SavedView] : Display saved, skipped and failed counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the TagEngine, providing non-blocking status reporting while saving.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, s, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
