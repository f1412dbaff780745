package store

import "rowloom/internal/domain"

// reduceProjects owns the projects slice. It returns the input unchanged
// for actions it does not recognize. Entity maps are copied on write so
// earlier states stay valid.
func reduceProjects(state domain.ProjectsState, action domain.Action) (domain.ProjectsState, bool) {
	switch a := action.(type) {
	case domain.LoadProjectsStartAction:
		state.Loading = true
		state.Error = ""
		return state, true

	case domain.LoadProjectsSuccessAction:
		entities := make(map[int]domain.Project, len(a.Projects))
		for _, p := range a.Projects {
			entities[p.ID] = p
		}
		state.Entities = entities
		state.Loading = false
		state.Error = ""
		if _, ok := entities[state.CurrentProjectID]; !ok {
			state.CurrentProjectID = 0
		}
		return state, true

	case domain.LoadProjectsFailureAction:
		state.Loading = false
		state.Error = a.Err
		return state, true

	case domain.CreateProjectSuccessAction:
		state.Entities = withProject(state.Entities, a.Project)
		return state, true

	case domain.UpdateProjectAction:
		if _, ok := state.Entities[a.Project.ID]; !ok {
			return state, false
		}
		state.Entities = withProject(state.Entities, a.Project)
		return state, true

	case domain.DeleteProjectAction:
		if _, ok := state.Entities[a.ProjectID]; !ok {
			return state, false
		}
		entities := make(map[int]domain.Project, len(state.Entities)-1)
		for id, p := range state.Entities {
			if id != a.ProjectID {
				entities[id] = p
			}
		}
		state.Entities = entities
		if state.CurrentProjectID == a.ProjectID {
			state.CurrentProjectID = 0
		}
		return state, true

	case domain.SetCurrentProjectAction:
		if state.CurrentProjectID == a.ProjectID {
			return state, false
		}
		state.CurrentProjectID = a.ProjectID
		return state, true

	case domain.ClearCurrentProjectAction:
		if state.CurrentProjectID == 0 {
			return state, false
		}
		state.CurrentProjectID = 0
		return state, true

	case domain.UpdatePositionAction:
		return withPosition(state, a.ProjectID, a.Position)

	case domain.UpdatePositionFailureAction:
		return withPosition(state, a.ProjectID, a.Previous)
	}
	return state, false
}

func withProject(entities map[int]domain.Project, p domain.Project) map[int]domain.Project {
	next := make(map[int]domain.Project, len(entities)+1)
	for id, existing := range entities {
		next[id] = existing
	}
	next[p.ID] = p
	return next
}

func withPosition(state domain.ProjectsState, projectID int, pos domain.Position) (domain.ProjectsState, bool) {
	p, ok := state.Entities[projectID]
	if !ok || p.Position == pos {
		return state, false
	}
	p.Position = pos
	state.Entities = withProject(state.Entities, p)
	return state, true
}
