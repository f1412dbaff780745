package store

import (
	"reflect"
	"sync"

	"rowloom/internal/domain"
)

// refresher is the untyped face of a Selection, letting the store push new
// state to handles of any result type.
type refresher interface {
	refresh(*domain.AppState)
}

// Selection is a cached read handle for one selector function. It
// recomputes lazily and notifies subscribers only when the derived value
// actually changes.
type Selection[T any] struct {
	mu     sync.Mutex
	store  *Store
	fn     func(*domain.AppState) T
	value  T
	valid  bool
	subs   []selectionSub[T]
	nextID int
}

type selectionSub[T any] struct {
	id int
	fn func(T)
}

// Select returns the selection handle for fn, creating it on first use.
// Handles are keyed by selector function identity: calling Select twice
// with the same function returns the same handle.
func Select[T any](s *Store, fn func(*domain.AppState) T) *Selection[T] {
	key := reflect.ValueOf(fn).Pointer()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.selections[key]; ok {
		if sel, ok := existing.(*Selection[T]); ok {
			return sel
		}
	}
	sel := &Selection[T]{store: s, fn: fn}
	s.selections[key] = sel
	return sel
}

// Value returns the current derived value, computing it on first access.
func (sel *Selection[T]) Value() T {
	state := sel.store.State()

	sel.mu.Lock()
	defer sel.mu.Unlock()
	if !sel.valid {
		sel.value = sel.fn(state)
		sel.valid = true
	}
	return sel.value
}

// Subscribe registers a callback invoked whenever the derived value
// changes. Returns an unsubscribe function.
func (sel *Selection[T]) Subscribe(fn func(T)) func() {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	id := sel.nextID
	sel.nextID++
	sel.subs = append(sel.subs, selectionSub[T]{id: id, fn: fn})
	return func() {
		sel.mu.Lock()
		defer sel.mu.Unlock()
		for i, sub := range sel.subs {
			if sub.id == id {
				sel.subs = append(sel.subs[:i], sel.subs[i+1:]...)
				break
			}
		}
	}
}

// refresh recomputes against the new state and fans out to subscribers
// when the derived value changed under deep equality.
func (sel *Selection[T]) refresh(state *domain.AppState) {
	next := sel.fn(state)

	sel.mu.Lock()
	if sel.valid && reflect.DeepEqual(sel.value, next) {
		sel.mu.Unlock()
		return
	}
	sel.value = next
	sel.valid = true
	subs := make([]selectionSub[T], len(sel.subs))
	copy(subs, sel.subs)
	sel.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}
