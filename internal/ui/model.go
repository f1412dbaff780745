// Package ui is the terminal interface. The model holds no pattern state
// of its own: it reads from the store through selection handles and
// dispatches actions (directly or through the projects service) on key
// input. A store listener forwards every state change into the Bubble
// Tea loop as a message.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rowloom/internal/domain"
	"rowloom/internal/importer"
	"rowloom/internal/persist"
	"rowloom/internal/store"
)

type viewMode int

const (
	viewProjects viewMode = iota
	viewTracking
)

type inputMode int

const (
	inputNone inputMode = iota
	inputImport
	inputJump
	inputRename
	inputConfirmDelete
)

const notificationTTL = 4 * time.Second

// Model is the Bubble Tea model.
type Model struct {
	store    *store.Store
	projects *persist.ProjectsService
	logger   *zap.Logger

	// Program reference for terminal management around the pager.
	program *tea.Program

	width  int
	height int

	view      viewMode
	cursor    int
	showHelp  bool
	input     textinput.Model
	inputMode inputMode
	deleteID  int

	// Notification whose expiry timer is already running.
	expiringID string
}

// NewModel creates the UI model.
func NewModel(st *store.Store, projects *persist.ProjectsService, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.CharLimit = 256
	return &Model{
		store:    st,
		projects: projects,
		logger:   logger,
		input:    input,
	}
}

// SetProgram gives the model its program handle, needed to release the
// terminal for the pager.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateChangedMsg:
		return m.syncWithState()

	case clearNotificationMsg:
		if m.expiringID == msg.id {
			m.expiringID = ""
		}
		m.store.Dispatch(domain.ClearNotificationAction{ID: msg.id})
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.logger.Error("pager", zap.Error(msg.err))
			m.notifyError("pager failed: " + msg.err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// syncWithState reconciles UI-only state after a store change: the active
// view follows the current-project selection, the list cursor stays in
// range, and a fresh notification starts its expiry timer.
func (m *Model) syncWithState() (tea.Model, tea.Cmd) {
	state := m.store.State()

	if store.SelectCurrentProjectID(state) != 0 {
		m.view = viewTracking
	} else {
		m.view = viewProjects
	}

	if n := len(state.Projects.Entities); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}

	var cmd tea.Cmd
	if n := store.SelectActiveNotification(state); n != nil && n.ID != "" && n.ID != m.expiringID {
		m.expiringID = n.ID
		id := n.ID
		cmd = tea.Tick(notificationTTL, func(time.Time) tea.Msg {
			return clearNotificationMsg{id: id}
		})
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil
	case "q":
		if m.view == viewTracking {
			m.store.Dispatch(domain.ClearCurrentProjectAction{})
			return m, nil
		}
		return m, tea.Quit
	}

	if m.view == viewProjects {
		return m.handleProjectsKey(msg)
	}
	return m.handleTrackingKey(msg)
}

func (m *Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sorted := store.Select(m.store, store.SortedProjects).Value()

	switch msg.String() {
	case "j", "down":
		if m.cursor+1 < len(sorted) {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(sorted) > 0 {
			m.cursor = len(sorted) - 1
		}
	case "enter", "l":
		if m.cursor < len(sorted) {
			m.store.Dispatch(domain.SetCurrentProjectAction{ProjectID: sorted[m.cursor].ID})
		}
	case "i":
		return m.startInput(inputImport, "pattern file path")
	case "d":
		if m.cursor < len(sorted) {
			m.deleteID = sorted[m.cursor].ID
			return m.startInput(inputConfirmDelete, fmt.Sprintf("delete %q? (y/N)", sorted[m.cursor].Name))
		}
	case "s":
		m.cycleSort()
	}
	return m, nil
}

func (m *Model) handleTrackingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.store.State()
	proj := store.SelectCurrentProject(state)
	if proj == nil {
		m.view = viewProjects
		return m, nil
	}
	settings := store.SelectAllSettings(state)

	if msg.String() == "esc" {
		m.store.Dispatch(domain.ClearCurrentProjectAction{})
		return m, nil
	}
	if len(proj.Pattern.Rows) == 0 {
		return m, nil
	}
	// A re-import can shrink the pattern under the saved position.
	clamped := *proj
	clamped.Position = domain.Clamp(proj.Pattern, proj.Position)
	proj = &clamped

	switch msg.String() {
	case " ", "l", "right":
		m.move(proj, domain.Advance(proj.Pattern, proj.Position, 1))
	case "h", "left", "backspace":
		m.move(proj, domain.Retreat(proj.Pattern, proj.Position, 1))
	case "a":
		n := settings.MultiAdvance
		if n < 1 {
			n = 1
		}
		m.move(proj, domain.Advance(proj.Pattern, proj.Position, n))
	case "J", "down":
		m.finishRow(proj)
	case "K", "up":
		m.move(proj, domain.RetreatRow(proj.Pattern, proj.Position))
	case "x":
		m.toggleMark(proj, proj.Pattern.Rows[proj.Position.Row].Number)
	case "m":
		m.cycleMarkMode()
	case "g":
		return m.startInput(inputJump, "jump to row")
	case "r":
		mdl, cmd := m.startInput(inputRename, "project name")
		m.input.SetValue(proj.Name)
		return mdl, cmd
	case "v":
		return m, m.openPatternPager(proj, settings)
	case "u":
		if err := m.store.RestoreStateFromHistory(len(m.store.StateHistory()) - 2); err != nil {
			m.notifyError("nothing to undo")
		}
	case "z":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "zoom", Value: !settings.Zoom})
	case "f":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "flam_markers", Value: !settings.FlamMarkers})
	case "L":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "lr_designators", Value: !settings.LRDesignators})
	case "c":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "combine12", Value: !settings.Combine12})
	case "w":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "flip_working", Value: !settings.FlipWorking})
	case "+", "=":
		m.store.Dispatch(domain.UpdateSettingAction{Name: "multi_advance", Value: settings.MultiAdvance + 1})
	case "-":
		if settings.MultiAdvance > 1 {
			m.store.Dispatch(domain.UpdateSettingAction{Name: "multi_advance", Value: settings.MultiAdvance - 1})
		}
	case "s":
		m.cycleSort()
	}
	return m, nil
}

// move saves a position change optimistically through the service.
func (m *Model) move(proj *domain.Project, next domain.Position) {
	if next == proj.Position {
		return
	}
	m.projects.SavePosition(context.Background(), proj.ID, proj.Position, next)
}

// finishRow advances to the next row. In a marking mode the departed row
// is marked done or cleared on the way out.
func (m *Model) finishRow(proj *domain.Project) {
	mode := store.SelectMarkMode(m.store.State())
	departed := proj.Pattern.Rows[proj.Position.Row].Number
	switch mode {
	case domain.MarkModeDone:
		m.setMark(proj, departed, true)
	case domain.MarkModeClear:
		m.setMark(proj, departed, false)
	}
	m.move(proj, domain.AdvanceRow(proj.Pattern, proj.Position))
}

func (m *Model) toggleMark(proj *domain.Project, rowNumber int) {
	marked := false
	for _, n := range proj.MarkedRows {
		if n == rowNumber {
			marked = true
			break
		}
	}
	m.setMark(proj, rowNumber, !marked)
}

func (m *Model) setMark(proj *domain.Project, rowNumber int, done bool) {
	next := make([]int, 0, len(proj.MarkedRows)+1)
	for _, n := range proj.MarkedRows {
		if n != rowNumber {
			next = append(next, n)
		}
	}
	if done {
		next = append(next, rowNumber)
	}
	if len(next) == len(proj.MarkedRows) && done {
		return
	}
	updated := *proj
	updated.MarkedRows = next
	m.store.Dispatch(domain.UpdateProjectAction{Project: updated})
	m.projects.SaveMarkedRows(context.Background(), proj.ID, next)
}

func (m *Model) cycleMarkMode() {
	switch store.SelectMarkMode(m.store.State()) {
	case domain.MarkModeDefault:
		m.store.Dispatch(domain.SetMarkModeAction{Mode: domain.MarkModeDone})
	case domain.MarkModeDone:
		m.store.Dispatch(domain.SetMarkModeAction{Mode: domain.MarkModeClear})
	default:
		m.store.Dispatch(domain.ResetMarkModeAction{})
	}
}

func (m *Model) cycleSort() {
	order := []string{"updated", "name", "created"}
	current := store.SelectAllSettings(m.store.State()).ProjectSort
	next := order[0]
	for i, s := range order {
		if s == current {
			next = order[(i+1)%len(order)]
			break
		}
	}
	m.store.Dispatch(domain.UpdateSettingAction{Name: "project_sort", Value: next})
}

func (m *Model) startInput(mode inputMode, placeholder string) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) stopInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode == inputConfirmDelete {
		if msg.String() == "y" || msg.String() == "Y" {
			m.projects.DeleteProject(context.Background(), m.deleteID)
		}
		m.deleteID = 0
		m.stopInput()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		value := m.input.Value()
		mode := m.inputMode
		m.stopInput()
		m.commitInput(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitInput(mode inputMode, value string) {
	switch mode {
	case inputImport:
		m.importPattern(value)
	case inputJump:
		proj := store.SelectCurrentProject(m.store.State())
		if proj == nil {
			return
		}
		number, err := strconv.Atoi(value)
		if err != nil {
			m.notifyError("not a row number: " + value)
			return
		}
		m.move(proj, domain.JumpToRow(proj.Pattern, number))
	case inputRename:
		proj := store.SelectCurrentProject(m.store.State())
		if proj == nil || value == "" || value == proj.Name {
			return
		}
		updated := *proj
		updated.Name = value
		m.projects.UpdateProject(context.Background(), updated)
	}
}

func (m *Model) importPattern(path string) {
	if path == "" {
		return
	}
	pattern, err := importer.ImportPatternFile(path)
	if err != nil {
		m.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
		m.notifyError("import failed: " + err.Error())
		return
	}
	m.projects.CreateProject(context.Background(), domain.Project{
		Name:       pattern.Name,
		SourcePath: path,
		Pattern:    pattern,
	})
}

func (m *Model) notifyError(message string) {
	m.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
		Level:   domain.NotifyError,
		Message: message,
	}})
}
