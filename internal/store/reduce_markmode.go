package store

import "rowloom/internal/domain"

func reduceMarkMode(state domain.MarkModeState, action domain.Action) (domain.MarkModeState, bool) {
	switch a := action.(type) {
	case domain.SetMarkModeAction:
		if state.Mode == a.Mode {
			return state, false
		}
		state.Previous = state.Mode
		state.Mode = a.Mode
		return state, true

	case domain.ResetMarkModeAction:
		if state.Mode == domain.MarkModeDefault {
			return state, false
		}
		state.Previous = state.Mode
		state.Mode = domain.MarkModeDefault
		return state, true
	}
	return state, false
}

func reduceSystem(state domain.SystemState, action domain.Action) (domain.SystemState, bool) {
	if a, ok := action.(domain.SetReadyAction); ok {
		if state.Ready == a.Ready {
			return state, false
		}
		state.Ready = a.Ready
		return state, true
	}
	return state, false
}
