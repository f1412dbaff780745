package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rowloom/internal/domain"
	"rowloom/internal/persist"
	"rowloom/internal/store"
)

// Run starts the TUI and blocks until it exits. Store changes are
// forwarded into the Bubble Tea loop so the view always renders the
// latest state, no matter which goroutine dispatched.
func Run(st *store.Store, projects *persist.ProjectsService, logger *zap.Logger) error {
	model := NewModel(st, projects, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	unsubscribe := st.AddListener(func(_ *domain.AppState, _ domain.Action) {
		program.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}
