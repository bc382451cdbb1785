package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/tags"
	"github.com/desertthunder/tagx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TagListView ViewState = iota
	ValueInputView
	ResultView
	SaveView
	SavedView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.TagEngine
	files        []tasks.File
	saveOpts     tasks.SaveOpts
	width        int
	height       int
	tagList      list.Model
	input        textinput.Model
	selected     tags.Tag
	inputErr     error
	report       *editor.Report
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	saved        *tasks.SaveResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model editing files with engine. saveOpts is used when the user saves.
func NewModel(ctx context.Context, engine *tasks.TagEngine, files []tasks.File, saveOpts tasks.SaveOpts) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 1024

	tagList := list.New(tagItems(files), list.NewDefaultDelegate(), 0, 0)
	tagList.Title = fmt.Sprintf("Tags (%d files)", len(files))

	return &Model{
		ctx:      ctx,
		view:     TagListView,
		engine:   engine,
		files:    files,
		saveOpts: saveOpts,
		tagList:  tagList,
		input:    input,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// State returns the current view.
func (m *Model) State() ViewState { return m.view }

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tagList.SetSize(msg.Width-4, msg.Height-8)
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TagListView:
			return m.handleTagListKeys(msg)
		case ValueInputView:
			return m.handleInputKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case SavedView:
			return m.handleSavedKeys(msg)
		}
		return m, nil

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgEditApplied:
		data := msg.data.(editApplied)
		m.report = data.report
		m.err = data.err
		m.view = ResultView
		m.refreshTags()
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgSaveComplete:
		data := msg.data.(saveComplete)
		m.saved = data.result
		m.err = data.err
		m.view = SavedView
		m.progressChan = nil
		m.refreshTags()
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case TagListView:
		return m.renderTagList()
	case ValueInputView:
		return m.renderInput()
	case ResultView:
		return m.renderResult()
	case SaveView:
		return m.renderSave()
	case SavedView:
		return m.renderSaved()
	default:
		return ""
	}
}

func (m *Model) handleTagListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tagList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.tagList, cmd = m.tagList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.save):
		return m, m.startSave()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.tagList.SelectedItem().(tagItem); ok {
			return m, m.promptValue(item.tag)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tagList, cmd = m.tagList.Update(msg)
	return m, cmd
}

// handleInputKeys sends everything but enter, esc and ctrl+c to the text input, so "q" and "s"
// can be typed.
func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.inputErr = nil
		m.view = TagListView
		return m, nil
	case "enter":
		return m, m.submitValue()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.save):
		return m, m.startSave()
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.report = nil
		m.err = nil
		m.view = TagListView
	}
	return m, nil
}

func (m *Model) handleSavedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.saved = nil
		m.err = nil
		m.view = TagListView
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TagListView:
		m.tagList, cmd = m.tagList.Update(msg)
	case ValueInputView:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) promptValue(tag tags.Tag) tea.Cmd {
	m.selected = tag
	m.inputErr = nil
	m.input.Placeholder = tags.ShapeOf(tag).String()
	m.input.SetValue("")
	m.view = ValueInputView
	return m.input.Focus()
}

// submitValue checks the typed value against the selected tag before touching any file. A value
// that cannot be read keeps the prompt open with the error shown.
func (m *Model) submitValue() tea.Cmd {
	v, err := m.engine.Coordinator().Coercer().Coerce(m.selected, m.input.Value())
	if err != nil {
		m.inputErr = err
		return nil
	}

	m.inputErr = nil
	m.input.Blur()
	tag := m.selected

	return func() tea.Msg {
		report, err := m.engine.EditValue(nil, m.files, tag, v)
		return editAppliedMsg(report, err)
	}
}

func (m *Model) startSave() tea.Cmd {
	m.view = SaveView
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	save := func() tea.Msg {
		result, err := m.engine.SaveAll(m.ctx, progress, m.files, m.saveOpts)
		close(progress)
		return saveCompleteMsg(result, err)
	}

	return tea.Batch(save, m.waitForProgress())
}

// waitForProgress reads one update. It stops once the channel closes; the save command itself
// reports completion.
func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) refreshTags() {
	index := m.tagList.Index()
	m.tagList.SetItems(tagItems(m.files))
	m.tagList.Select(index)
}

func (m *Model) renderTagList() string {
	editKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit"))
	helpKeys := []key.Binding{editKey, m.keys.save, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.tagList.View(), helpView)
}

func (m *Model) renderInput() string {
	title := styles.title.Render(fmt.Sprintf("Set %s on %d files", m.selected, len(m.files)))
	usage := styles.help.Render(m.selected.Usage())

	var errLine string
	if m.inputErr != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("✗ %v", m.inputErr))
	}

	applyKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
	cancelKey := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	helpView := m.help.ShortHelpView([]key.Binding{applyKey, m.keys.back, cancelKey})

	return fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s", title, usage, m.input.View(), errLine, helpView)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.save, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Edit failed: %v", m.err)), helpView)
	}
	if m.report == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	var title string
	if failures := m.report.Failures(); len(failures) == 0 {
		title = styles.ok.Render(fmt.Sprintf("✓ %s updated", m.selected))
	} else {
		title = styles.warn.Render(fmt.Sprintf("%s updated with %d failures", m.selected, len(failures)))
	}

	var b strings.Builder
	for _, f := range m.report.Failures() {
		fmt.Fprintf(&b, "\n  • %s: %v", filepath.Base(f.Path), f.Err)
	}

	return fmt.Sprintf("%s\n\n%d of %d files%s\n\n%s", title, m.report.Succeeded(), len(m.report.Outcomes), b.String(), helpView)
}

func (m *Model) renderSave() string {
	title := styles.title.Render("Saving")
	phase := "Starting..."
	if m.progress.Total > 0 {
		phase = fmt.Sprintf("Saving files (%d/%d)", m.progress.Step, m.progress.Total)
	}
	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderSaved() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	if m.saved == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Save failed: %v", m.err)), helpView)
	}

	title := styles.ok.Render("✓ Save Complete!")
	if m.saved.Failed > 0 || m.err != nil {
		title = styles.warn.Render("Save finished with errors")
	}

	info := fmt.Sprintf("\nSaved: %d\nUnchanged: %d\nFailed: %d", m.saved.Saved, m.saved.Skipped, m.saved.Failed)

	var failed string
	for _, r := range m.saved.Results {
		if r.Error != nil {
			failed += fmt.Sprintf("\n  • %s: %v", filepath.Base(r.Path), r.Error)
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
