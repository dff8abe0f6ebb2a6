// Package assets provides generation-checked arenas for GPU resource
// descriptors. Handles are indices with a generation counter, so a
// lookup through a stale handle is a checked failure instead of a
// dangling reference.
package assets

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a handle does not resolve, either
// because the slot was freed or because the generation is stale.
var ErrNotFound = errors.New("asset not found")

// Handle identifies an asset inside an Arena.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// IsZero reports whether the handle was never assigned.
func (h Handle[T]) IsZero() bool {
	return h.generation == 0
}

func (h Handle[T]) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Arena owns assets of one type and hands out generation-checked
// handles to them.
type Arena[T any] struct {
	mu       sync.RWMutex
	slots    []slot[T]
	free     []uint32
	modified []func(Handle[T])
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Add stores a value and returns its handle.
func (a *Arena[T]) Add(value T) Handle[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.generation++
		s.live = true
		return Handle[T]{index: idx, generation: s.generation}
	}

	a.slots = append(a.slots, slot[T]{value: value, generation: 1, live: true})
	return Handle[T]{index: uint32(len(a.slots) - 1), generation: 1}
}

// Get returns a copy of the asset behind the handle.
func (a *Arena[T]) Get(h Handle[T]) (T, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero T
	s, err := a.resolve(h)
	if err != nil {
		return zero, err
	}
	return s.value, nil
}

// GetMut returns a pointer to the asset behind the handle. The pointer
// is valid until the next Add; callers mutate in place and then call
// NotifyModified if dependents need to observe the change.
func (a *Arena[T]) GetMut(h Handle[T]) (*T, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, err := a.resolve(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Remove frees the slot. Existing handles to it become stale.
func (a *Arena[T]) Remove(h Handle[T]) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.resolve(h)
	if err != nil {
		return err
	}
	var zero T
	s.value = zero
	s.live = false
	a.free = append(a.free, h.index)
	return nil
}

// Len returns the number of live assets.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}

// OnModified registers a callback invoked whenever NotifyModified is
// called for an asset in this arena. Used by the render backend to
// invalidate cached GPU state (bind groups, attachments).
func (a *Arena[T]) OnModified(fn func(Handle[T])) {
	a.mu.Lock()
	a.modified = append(a.modified, fn)
	a.mu.Unlock()
}

// NotifyModified announces that the asset behind the handle changed in
// a way dependents must react to, such as a texture resize.
func (a *Arena[T]) NotifyModified(h Handle[T]) {
	a.mu.RLock()
	subs := make([]func(Handle[T]), len(a.modified))
	copy(subs, a.modified)
	a.mu.RUnlock()

	for _, fn := range subs {
		fn(h)
	}
}

// resolve is called with the lock held.
func (a *Arena[T]) resolve(h Handle[T]) (*slot[T], error) {
	if int(h.index) >= len(a.slots) {
		return nil, fmt.Errorf("resolving handle %s: %w", h, ErrNotFound)
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, fmt.Errorf("resolving handle %s: %w", h, ErrNotFound)
	}
	return s, nil
}
