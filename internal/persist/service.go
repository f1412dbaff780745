package persist

import (
	"context"

	"go.uber.org/zap"

	"rowloom/internal/domain"
	"rowloom/internal/store"
)

// ProjectsService mediates between the store and the project database.
// Mutating methods dispatch immediately and perform the database write on
// a separate goroutine, dispatching a follow-up action when it finishes.
// The store serializes dispatches, so goroutines may call Dispatch freely.
type ProjectsService struct {
	db     *DB
	store  *store.Store
	logger *zap.Logger
}

// NewProjectsService wires a service to the store and database.
func NewProjectsService(db *DB, st *store.Store, logger *zap.Logger) *ProjectsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectsService{db: db, store: st, logger: logger}
}

// LoadProjects loads every project and replaces the entity map.
func (s *ProjectsService) LoadProjects(ctx context.Context) {
	s.store.Dispatch(domain.LoadProjectsStartAction{})
	go func() {
		projects, err := s.db.ListProjects(ctx)
		if err != nil {
			s.logger.Error("load projects", zap.Error(err))
			s.store.Dispatch(domain.LoadProjectsFailureAction{Err: err.Error()})
			return
		}
		s.store.Dispatch(domain.LoadProjectsSuccessAction{Projects: projects})
	}()
}

// CreateProject persists a new project and, once it has an id, adds it to
// the store and selects it.
func (s *ProjectsService) CreateProject(ctx context.Context, p domain.Project) {
	go func() {
		saved, err := s.db.SaveProject(ctx, p)
		if err != nil {
			s.logger.Error("create project", zap.String("name", p.Name), zap.Error(err))
			s.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
				Level:   domain.NotifyError,
				Message: "could not save project: " + err.Error(),
			}})
			return
		}
		s.store.Dispatch(domain.CreateProjectSuccessAction{Project: saved})
		s.store.Dispatch(domain.SetCurrentProjectAction{ProjectID: saved.ID})
	}()
}

// UpdateProject persists a changed project and refreshes the store copy.
func (s *ProjectsService) UpdateProject(ctx context.Context, p domain.Project) {
	go func() {
		saved, err := s.db.SaveProject(ctx, p)
		if err != nil {
			s.logger.Error("update project", zap.Int("id", p.ID), zap.Error(err))
			s.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
				Level:   domain.NotifyError,
				Message: "could not save project: " + err.Error(),
			}})
			return
		}
		s.store.Dispatch(domain.UpdateProjectAction{Project: saved})
	}()
}

// DeleteProject removes a project from the store immediately and from the
// database in the background.
func (s *ProjectsService) DeleteProject(ctx context.Context, id int) {
	s.store.Dispatch(domain.DeleteProjectAction{ProjectID: id})
	go func() {
		if err := s.db.DeleteProject(ctx, id); err != nil {
			s.logger.Error("delete project", zap.Int("id", id), zap.Error(err))
			s.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
				Level:   domain.NotifyError,
				Message: "could not delete project: " + err.Error(),
			}})
		}
	}()
}

// SavePosition optimistically moves a project's position in the store and
// persists it in the background. If the write fails the position rolls
// back to prev.
func (s *ProjectsService) SavePosition(ctx context.Context, id int, prev, next domain.Position) {
	s.store.Dispatch(domain.UpdatePositionAction{ProjectID: id, Position: next})
	go func() {
		if err := s.db.SavePosition(ctx, id, next); err != nil {
			s.logger.Error("save position", zap.Int("id", id), zap.Error(err))
			s.store.Dispatch(domain.UpdatePositionFailureAction{
				ProjectID: id,
				Previous:  prev,
				Err:       err.Error(),
			})
		}
	}()
}

// SaveMarkedRows persists the done-row set for a project already updated
// in the store.
func (s *ProjectsService) SaveMarkedRows(ctx context.Context, id int, marked []int) {
	go func() {
		if err := s.db.SaveMarkedRows(ctx, id, marked); err != nil {
			s.logger.Error("save marked rows", zap.Int("id", id), zap.Error(err))
			s.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
				Level:   domain.NotifyError,
				Message: "could not save marked rows: " + err.Error(),
			}})
		}
	}()
}
