package config

import (
	"sync"

	"go.uber.org/zap"

	"rowloom/internal/domain"
	"rowloom/internal/store"
)

// SettingsService binds a SettingsStore to the state store: it loads the
// persisted settings into state on Start and writes them back whenever
// they change.
type SettingsService struct {
	files  SettingsStore
	store  *store.Store
	logger *zap.Logger

	mu          sync.Mutex // dispatches arrive from several goroutines
	last        domain.Settings
	unsubscribe func()
}

// NewSettingsService wires the service. Call Start to begin.
func NewSettingsService(files SettingsStore, st *store.Store, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{files: files, store: st, logger: logger}
}

// Start loads the persisted settings into the store and registers the
// write-back listener. Load failure falls back to defaults with a
// notification rather than refusing to start.
func (s *SettingsService) Start() {
	settings, err := s.files.Load()
	if err != nil {
		s.logger.Warn("settings load failed, using defaults", zap.Error(err))
		settings = domain.DefaultSettings()
		s.store.Dispatch(domain.ShowNotificationAction{Notification: domain.Notification{
			Level:   domain.NotifyWarning,
			Message: "settings file unreadable, using defaults",
		}})
	}
	s.store.Dispatch(domain.SetSettingsAction{Settings: settings})
	s.store.Dispatch(domain.SettingsReadyAction{})
	s.mu.Lock()
	s.last = settings
	s.mu.Unlock()

	s.unsubscribe = s.store.AddListener(func(state *domain.AppState, _ domain.Action) {
		current := state.Settings.Settings
		s.mu.Lock()
		defer s.mu.Unlock()
		if current == s.last {
			return
		}
		s.last = current
		// Save stays under the lock so concurrent dispatches cannot
		// interleave writes to the settings file.
		if err := s.files.Save(current); err != nil {
			s.logger.Error("settings save failed", zap.Error(err))
		}
	})
}

// Stop detaches the write-back listener.
func (s *SettingsService) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
