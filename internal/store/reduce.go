package store

import "rowloom/internal/domain"

// Reduce is the root reducer: the composition of every slice reducer.
// When no slice recognizes the action it returns the identical pointer so
// callers can detect a no-op with a pointer comparison.
func Reduce(state *domain.AppState, action domain.Action) *domain.AppState {
	projects, pch := reduceProjects(state.Projects, action)
	settings, sch := reduceSettings(state.Settings, action)
	notifications, nch := reduceNotifications(state.Notifications, action)
	markMode, mch := reduceMarkMode(state.MarkMode, action)
	system, ych := reduceSystem(state.System, action)

	if !pch && !sch && !nch && !mch && !ych {
		return state
	}
	return &domain.AppState{
		Projects:      projects,
		Settings:      settings,
		Notifications: notifications,
		MarkMode:      markMode,
		System:        system,
	}
}
