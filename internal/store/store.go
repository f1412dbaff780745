// Package store implements the reactive state store: actions are dispatched
// through middleware into pure per-slice reducers, producing a new immutable
// state tree that is pushed synchronously to listeners and selection handles.
package store

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"rowloom/internal/domain"
)

// HistoryLimit bounds the retained dispatch history.
const HistoryLimit = 50

// ErrInvalidHistoryIndex is returned by RestoreStateFromHistory for an
// index outside [0, len(history)).
var ErrInvalidHistoryIndex = errors.New("invalid history index")

// Middleware may transform an action before it reaches the reducers.
// Returning nil cancels the dispatch.
type Middleware func(domain.Action) domain.Action

// Listener is notified after every state change with the new state and the
// action that produced it.
type Listener func(*domain.AppState, domain.Action)

// HistoryEntry pairs a post-dispatch state with the action that produced it.
type HistoryEntry struct {
	State  *domain.AppState
	Action domain.Action
}

// Lifecycle pseudo-actions delivered to listeners when the store replaces
// state outside a normal dispatch.
const (
	ActionStateReset    domain.ActionType = "StateReset"
	ActionStateRestored domain.ActionType = "StateRestored"
)

type lifecycleAction struct {
	kind domain.ActionType
}

func (a lifecycleAction) ActionType() domain.ActionType { return a.kind }

type listenerEntry struct {
	id int
	fn Listener
}

// Store holds the current state tree and the dispatch machinery. Construct
// it explicitly and pass it to collaborators; there is no ambient instance.
type Store struct {
	mu         sync.Mutex
	logger     *zap.Logger
	initial    func() *domain.AppState
	state      *domain.AppState
	middleware []Middleware
	listeners  []listenerEntry
	nextID     int
	history    []HistoryEntry
	selections map[uintptr]refresher
}

// New creates a store seeded from domain.NewAppState.
func New(logger *zap.Logger) *Store {
	return NewWithInitial(domain.NewAppState, logger)
}

// NewWithInitial creates a store with a custom initial-state factory. The
// factory is re-invoked on Reset.
func NewWithInitial(initial func() *domain.AppState, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:     logger,
		initial:    initial,
		state:      initial(),
		selections: make(map[uintptr]refresher),
	}
}

// State returns the current state tree. The returned tree must be treated
// as read-only.
func (s *Store) State() *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddMiddleware appends a middleware to the dispatch chain. Middleware run
// in registration order.
func (s *Store) AddMiddleware(mw Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mw)
}

// AddListener registers a listener and returns its unsubscribe function.
func (s *Store) AddListener(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch runs the action through the middleware chain, applies the root
// reducer, records history, and notifies selections and listeners before
// returning. A reducer or middleware panic propagates to the caller; a
// listener panic is recovered and logged so the remaining listeners still
// see the new state.
func (s *Store) Dispatch(action domain.Action) {
	s.mu.Lock()
	for _, mw := range s.middleware {
		action = mw(action)
		if action == nil {
			s.mu.Unlock()
			return
		}
	}

	next := Reduce(s.state, action)
	s.state = next
	s.history = append(s.history, HistoryEntry{State: next, Action: action})
	if len(s.history) > HistoryLimit {
		s.history = s.history[len(s.history)-HistoryLimit:]
	}
	s.mu.Unlock()

	s.notify(next, action)
}

// notify fans the new state out to selection handles, then listeners, in
// registration order. The registries are snapshotted first so a callback
// may subscribe or unsubscribe without deadlocking.
func (s *Store) notify(state *domain.AppState, action domain.Action) {
	s.mu.Lock()
	sels := make([]refresher, 0, len(s.selections))
	for _, sel := range s.selections {
		sels = append(sels, sel)
	}
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sel := range sels {
		sel.refresh(state)
	}
	for _, entry := range listeners {
		s.safeNotify(entry.fn, state, action)
	}
}

func (s *Store) safeNotify(fn Listener, state *domain.AppState, action domain.Action) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store listener panic",
				zap.String("action", string(action.ActionType())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	fn(state, action)
}

// StateHistory returns a copy of the bounded dispatch history, oldest
// entry first.
func (s *Store) StateHistory() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// RestoreStateFromHistory replaces the current state with the state
// recorded at history index i. The history itself is left intact. An
// out-of-range index returns an error and leaves state unchanged.
func (s *Store) RestoreStateFromHistory(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.history) {
		n := len(s.history)
		s.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidHistoryIndex, i, n)
	}
	s.state = s.history[i].State
	state := s.state
	s.mu.Unlock()

	s.notify(state, lifecycleAction{kind: ActionStateRestored})
	return nil
}

// Reset replaces the state with a fresh initial-state factory output and
// clears the history.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = s.initial()
	s.history = nil
	state := s.state
	s.mu.Unlock()

	s.notify(state, lifecycleAction{kind: ActionStateReset})
}
