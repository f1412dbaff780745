package domain

// AppState is the single immutable state tree. Reducers never mutate it;
// every dispatch that changes anything produces a fresh AppState whose
// unchanged slices are carried over as-is, so slice values (and the maps
// inside them) can be compared for cheap no-op detection.
type AppState struct {
	Projects      ProjectsState
	Settings      SettingsState
	Notifications NotificationsState
	MarkMode      MarkModeState
	System        SystemState
}

// ProjectsState holds the project entity map and selection.
type ProjectsState struct {
	// Entities maps project ID to record. Stored as a map, never a
	// slice, for O(1) lookup and stable identity under update.
	Entities map[int]Project
	// CurrentProjectID is the active project, 0 when none is selected.
	CurrentProjectID int
	Loading          bool
	Error            string
}

// SettingsState wraps the settings values plus a loaded flag.
type SettingsState struct {
	Settings Settings
	Ready    bool
}

// NotificationsState holds the pending notification queue, oldest first.
type NotificationsState struct {
	Queue []Notification
}

// MarkModeState tracks the current and previous mark mode.
type MarkModeState struct {
	Mode     int
	Previous int
}

// SystemState holds cross-cutting app status.
type SystemState struct {
	Ready bool
}

// NewAppState is the initial-state factory. The store calls it once at
// construction and again on Reset.
func NewAppState() *AppState {
	return &AppState{
		Projects: ProjectsState{
			Entities:         map[int]Project{},
			CurrentProjectID: 0,
		},
		Settings: SettingsState{
			Settings: DefaultSettings(),
		},
		Notifications: NotificationsState{},
		MarkMode:      MarkModeState{Mode: MarkModeDefault},
		System:        SystemState{},
	}
}

// CurrentProject returns the selected project and whether one is selected.
func (s *AppState) CurrentProject() (Project, bool) {
	if s.Projects.CurrentProjectID == 0 {
		return Project{}, false
	}
	p, ok := s.Projects.Entities[s.Projects.CurrentProjectID]
	return p, ok
}
