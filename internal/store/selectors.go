package store

import (
	"sort"
	"strings"
	"sync"

	"rowloom/internal/domain"
)

// Selectors are pure read views over the state tree. They are package-level
// functions so selection handles keyed on function identity stay stable
// across the whole program.

// SelectProjectsLoading reports whether a project load is in flight.
func SelectProjectsLoading(s *domain.AppState) bool {
	return s.Projects.Loading
}

// SelectProjectsError returns the last load error ("" when none).
func SelectProjectsError(s *domain.AppState) string {
	return s.Projects.Error
}

// SelectCurrentProjectID returns the active project ID (0 when none).
func SelectCurrentProjectID(s *domain.AppState) int {
	return s.Projects.CurrentProjectID
}

// SelectCurrentProject returns the active project, or nil when none is
// selected or the selection points at a missing entity.
func SelectCurrentProject(s *domain.AppState) *domain.Project {
	p, ok := s.CurrentProject()
	if !ok {
		return nil
	}
	return &p
}

// SelectCurrentPosition returns the tracked position of the active
// project (zero value when no project is active).
func SelectCurrentPosition(s *domain.AppState) domain.Position {
	p, ok := s.CurrentProject()
	if !ok {
		return domain.Position{}
	}
	return p.Position
}

// SelectMarkMode returns the current mark mode.
func SelectMarkMode(s *domain.AppState) int {
	return s.MarkMode.Mode
}

// SelectActiveNotification returns the oldest pending notification, nil
// when the queue is empty.
func SelectActiveNotification(s *domain.AppState) *domain.Notification {
	if len(s.Notifications.Queue) == 0 {
		return nil
	}
	n := s.Notifications.Queue[0]
	return &n
}

// SelectAllSettings is the composite settings view. It is memoized on the
// settings slice value: unrelated state changes reuse the cached result.
var SelectAllSettings = Memoize1(
	func(s *domain.AppState) domain.SettingsState { return s.Settings },
	func(ss domain.SettingsState) domain.Settings { return ss.Settings },
)

// SortedProjects returns the projects ordered by the project_sort setting.
func SortedProjects(s *domain.AppState) []domain.Project {
	projects := make([]domain.Project, 0, len(s.Projects.Entities))
	for _, p := range s.Projects.Entities {
		projects = append(projects, p)
	}
	switch s.Settings.Settings.ProjectSort {
	case "name":
		sort.Slice(projects, func(i, j int) bool {
			return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
		})
	case "created":
		sort.Slice(projects, func(i, j int) bool {
			if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
				return projects[i].ID < projects[j].ID
			}
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
	default: // updated
		sort.Slice(projects, func(i, j int) bool {
			if projects[i].UpdatedAt.Equal(projects[j].UpdatedAt) {
				return projects[i].ID < projects[j].ID
			}
			return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
		})
	}
	return projects
}

// Memoize1 wraps a single-dependency selector: compute reruns only when the
// extracted dependency value changes. The dependency must be comparable;
// comparison is by value, so a selector depending on a whole slice struct
// recomputes whenever any field of that slice changes and never otherwise.
func Memoize1[D comparable, R any](dep func(*domain.AppState) D, compute func(D) R) func(*domain.AppState) R {
	var (
		mu     sync.Mutex
		cached bool
		lastD  D
		lastR  R
	)
	return func(s *domain.AppState) R {
		d := dep(s)
		mu.Lock()
		defer mu.Unlock()
		if cached && d == lastD {
			return lastR
		}
		lastD = d
		lastR = compute(d)
		cached = true
		return lastR
	}
}
