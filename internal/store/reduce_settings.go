package store

import "rowloom/internal/domain"

func reduceSettings(state domain.SettingsState, action domain.Action) (domain.SettingsState, bool) {
	switch a := action.(type) {
	case domain.SetSettingsAction:
		if state.Settings == a.Settings {
			return state, false
		}
		state.Settings = a.Settings
		return state, true

	case domain.UpdateSettingAction:
		next, ok := applySetting(state.Settings, a.Name, a.Value)
		if !ok || next == state.Settings {
			return state, false
		}
		state.Settings = next
		return state, true

	case domain.SettingsReadyAction:
		if state.Ready {
			return state, false
		}
		state.Ready = true
		return state, true
	}
	return state, false
}

// applySetting changes one named field. Unknown names and mistyped values
// are ignored rather than failing the whole dispatch.
func applySetting(s domain.Settings, name string, value any) (domain.Settings, bool) {
	switch name {
	case "combine12":
		v, ok := value.(bool)
		if !ok {
			return s, false
		}
		s.Combine12 = v
	case "lr_designators":
		v, ok := value.(bool)
		if !ok {
			return s, false
		}
		s.LRDesignators = v
	case "flam_markers":
		v, ok := value.(bool)
		if !ok {
			return s, false
		}
		s.FlamMarkers = v
	case "zoom":
		v, ok := value.(bool)
		if !ok {
			return s, false
		}
		s.Zoom = v
	case "scroll_offset":
		v, ok := value.(int)
		if !ok || v < 0 {
			return s, false
		}
		s.ScrollOffset = v
	case "multi_advance":
		v, ok := value.(int)
		if !ok || v < 1 {
			return s, false
		}
		s.MultiAdvance = v
	case "flip_working":
		v, ok := value.(bool)
		if !ok {
			return s, false
		}
		s.FlipWorking = v
	case "project_sort":
		v, ok := value.(string)
		if !ok {
			return s, false
		}
		switch v {
		case "name", "created", "updated":
			s.ProjectSort = v
		default:
			return s, false
		}
	default:
		return s, false
	}
	return s, true
}
