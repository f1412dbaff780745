package domain

// ActionType identifies an action kind.
type ActionType string

// Action types
const (
	ActionLoadProjectsStart     ActionType = "LoadProjectsStart"
	ActionLoadProjectsSuccess   ActionType = "LoadProjectsSuccess"
	ActionLoadProjectsFailure   ActionType = "LoadProjectsFailure"
	ActionCreateProjectSuccess  ActionType = "CreateProjectSuccess"
	ActionUpdateProject         ActionType = "UpdateProject"
	ActionDeleteProject         ActionType = "DeleteProject"
	ActionSetCurrentProject     ActionType = "SetCurrentProject"
	ActionClearCurrentProject   ActionType = "ClearCurrentProject"
	ActionUpdatePosition        ActionType = "UpdatePosition"
	ActionUpdatePositionFailure ActionType = "UpdatePositionFailure"
	ActionSetSettings           ActionType = "SetSettings"
	ActionUpdateSetting         ActionType = "UpdateSetting"
	ActionSettingsReady         ActionType = "SettingsReady"
	ActionShowNotification      ActionType = "ShowNotification"
	ActionClearNotification     ActionType = "ClearNotification"
	ActionSetMarkMode           ActionType = "SetMarkMode"
	ActionResetMarkMode         ActionType = "ResetMarkMode"
	ActionSetReady              ActionType = "SetReady"
)

// Action is the interface for all dispatched actions. Action structs are
// plain data; reducers switch on the concrete type.
type Action interface {
	ActionType() ActionType
}

// LoadProjectsStartAction marks the beginning of an asynchronous load.
type LoadProjectsStartAction struct{}

func (a LoadProjectsStartAction) ActionType() ActionType { return ActionLoadProjectsStart }

// LoadProjectsSuccessAction replaces the project entity map with the
// loaded records.
type LoadProjectsSuccessAction struct {
	Projects []Project
}

func (a LoadProjectsSuccessAction) ActionType() ActionType { return ActionLoadProjectsSuccess }

// LoadProjectsFailureAction records a failed load.
type LoadProjectsFailureAction struct {
	Err string
}

func (a LoadProjectsFailureAction) ActionType() ActionType { return ActionLoadProjectsFailure }

// CreateProjectSuccessAction adds a newly persisted project.
type CreateProjectSuccessAction struct {
	Project Project
}

func (a CreateProjectSuccessAction) ActionType() ActionType { return ActionCreateProjectSuccess }

// UpdateProjectAction replaces a project record in the entity map.
type UpdateProjectAction struct {
	Project Project
}

func (a UpdateProjectAction) ActionType() ActionType { return ActionUpdateProject }

// DeleteProjectAction removes a project. Clears the current selection if
// it pointed at the removed project.
type DeleteProjectAction struct {
	ProjectID int
}

func (a DeleteProjectAction) ActionType() ActionType { return ActionDeleteProject }

// SetCurrentProjectAction selects the active project.
type SetCurrentProjectAction struct {
	ProjectID int
}

func (a SetCurrentProjectAction) ActionType() ActionType { return ActionSetCurrentProject }

// ClearCurrentProjectAction deselects the active project.
type ClearCurrentProjectAction struct{}

func (a ClearCurrentProjectAction) ActionType() ActionType { return ActionClearCurrentProject }

// UpdatePositionAction optimistically moves the tracked position of a
// project. Callers capture the prior position before dispatching so a
// paired UpdatePositionFailureAction can roll back.
type UpdatePositionAction struct {
	ProjectID int
	Position  Position
}

func (a UpdatePositionAction) ActionType() ActionType { return ActionUpdatePosition }

// UpdatePositionFailureAction rolls back an optimistic position update.
// Previous carries the pre-update value captured by the caller.
type UpdatePositionFailureAction struct {
	ProjectID int
	Previous  Position
	Err       string
}

func (a UpdatePositionFailureAction) ActionType() ActionType { return ActionUpdatePositionFailure }

// SetSettingsAction replaces all settings at once (used when loading the
// persisted settings file).
type SetSettingsAction struct {
	Settings Settings
}

func (a SetSettingsAction) ActionType() ActionType { return ActionSetSettings }

// UpdateSettingAction changes a single named setting.
type UpdateSettingAction struct {
	Name  string
	Value any
}

func (a UpdateSettingAction) ActionType() ActionType { return ActionUpdateSetting }

// SettingsReadyAction marks the settings slice as loaded.
type SettingsReadyAction struct{}

func (a SettingsReadyAction) ActionType() ActionType { return ActionSettingsReady }

// ShowNotificationAction queues a notification. ID is assigned by the
// notification middleware when empty.
type ShowNotificationAction struct {
	Notification Notification
}

func (a ShowNotificationAction) ActionType() ActionType { return ActionShowNotification }

// ClearNotificationAction removes the oldest notification, or the one with
// the given ID when set.
type ClearNotificationAction struct {
	ID string
}

func (a ClearNotificationAction) ActionType() ActionType { return ActionClearNotification }

// SetMarkModeAction switches the mark mode, remembering the previous mode
// so ResetMarkModeAction can restore it.
type SetMarkModeAction struct {
	Mode int
}

func (a SetMarkModeAction) ActionType() ActionType { return ActionSetMarkMode }

// ResetMarkModeAction returns to the default mark mode.
type ResetMarkModeAction struct{}

func (a ResetMarkModeAction) ActionType() ActionType { return ActionResetMarkMode }

// SetReadyAction marks the application as initialized.
type SetReadyAction struct {
	Ready bool
}

func (a SetReadyAction) ActionType() ActionType { return ActionSetReady }
