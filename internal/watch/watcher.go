// Package watch re-imports a project's source file when it changes on
// disk, so edits made in BeadTool or a text editor show up without
// restarting.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"rowloom/internal/domain"
	"rowloom/internal/importer"
	"rowloom/internal/store"
)

// Updater receives the re-imported project. *persist.ProjectsService
// satisfies it.
type Updater interface {
	UpdateProject(ctx context.Context, p domain.Project)
}

// SourceWatcher follows the current project's source file. When the
// selection changes it retargets; when the file is written it re-parses
// after a short debounce and pushes the refreshed pattern.
type SourceWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	store       *store.Store
	updater     Updater
	logger      *zap.Logger
	debounceDur time.Duration

	path      string // watched file ("" when no project or no source)
	projectID int
	pending   time.Time // zero when no debounced reload is queued

	unsubscribe func()
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a SourceWatcher. Call Start to begin.
func New(st *store.Store, updater Updater, logger *zap.Logger) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SourceWatcher{
		watcher:     watcher,
		store:       st,
		updater:     updater,
		logger:      logger,
		debounceDur: 500 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins following the current project. Non-blocking.
func (w *SourceWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.unsubscribe = w.store.AddListener(func(state *domain.AppState, _ domain.Action) {
		w.retarget(store.SelectCurrentProject(state))
	})
	w.retarget(store.SelectCurrentProject(w.store.State()))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit.
func (w *SourceWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("close watcher", zap.Error(err))
	}
}

// retarget points the watcher at the source file of p, or at nothing.
// fsnotify watches the directory: editors often replace files by rename,
// which drops a watch on the file itself.
func (w *SourceWatcher) retarget(p *domain.Project) {
	path := ""
	id := 0
	if p != nil && p.SourcePath != "" {
		path = filepath.Clean(p.SourcePath)
		id = p.ID
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if path == w.path {
		w.projectID = id
		return
	}
	if w.path != "" {
		if err := w.watcher.Remove(filepath.Dir(w.path)); err != nil {
			w.logger.Debug("unwatch", zap.String("dir", filepath.Dir(w.path)), zap.Error(err))
		}
	}
	w.path = path
	w.projectID = id
	w.pending = time.Time{}
	if path == "" {
		return
	}
	if err := w.watcher.Add(filepath.Dir(path)); err != nil {
		w.logger.Warn("watch source dir", zap.String("dir", filepath.Dir(path)), zap.Error(err))
		w.path = ""
		w.projectID = 0
		return
	}
	w.logger.Debug("watching source", zap.String("path", path))
}

func (w *SourceWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))
		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *SourceWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.path == "" || filepath.Clean(event.Name) != w.path {
		return
	}
	w.pending = time.Now()
}

func (w *SourceWatcher) flushPending(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	path := w.path
	id := w.projectID
	w.pending = time.Time{}
	w.mu.Unlock()

	w.reload(ctx, id, path)
}

func (w *SourceWatcher) reload(ctx context.Context, id int, path string) {
	pattern, err := importer.ImportPatternFile(path)
	if err != nil {
		w.logger.Warn("re-import failed", zap.String("path", path), zap.Error(err))
		w.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
			Level:   domain.NotifyWarning,
			Message: "source file changed but could not be parsed: " + err.Error(),
		}})
		return
	}

	entities := w.store.State().Projects.Entities
	p, ok := entities[id]
	if !ok {
		return
	}
	pattern.Name = p.Pattern.Name
	p.Pattern = pattern
	w.logger.Info("source changed, pattern reloaded",
		zap.String("path", path), zap.Int("rows", len(pattern.Rows)))
	w.updater.UpdateProject(ctx, p)
	w.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
		Level:   domain.NotifyInfo,
		Message: "pattern reloaded from " + filepath.Base(path),
	}})
}
