package store

import (
	"slices"
	"sync"
)

// subscriberBuffer is the channel buffer size for each subscription.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore provides thread-safe storage with a publish-subscribe mechanism.
// Updates are sent non-blocking; if a subscriber's buffer is full, the
// snapshot is dropped for that subscriber to prevent blocking the toggle path.
type MemoryStore[T comparable] struct {
	mu     sync.RWMutex
	multi  bool
	reject func(T) bool
	values []T

	subMu       sync.RWMutex
	subscribers map[chan []T]struct{}
	closed      bool
}

// NewMemoryStore creates a new in-memory [Store].
//
// multi selects multi-select mode. reject, if non-nil, is consulted before
// every toggle; a true result makes the toggle a no-op.
func NewMemoryStore[T comparable](multi bool, reject func(T) bool) *MemoryStore[T] {
	return &MemoryStore[T]{
		multi:       multi,
		reject:      reject,
		subscribers: make(map[chan []T]struct{}),
	}
}

// Multi reports whether the store is in multi-select mode.
func (m *MemoryStore[T]) Multi() bool {
	return m.multi
}

// Toggle implements [Store].
func (m *MemoryStore[T]) Toggle(v T) bool {
	if m.reject != nil && m.reject(v) {
		return false
	}

	m.mu.Lock()
	idx := slices.Index(m.values, v)
	switch {
	case idx >= 0 && m.multi:
		m.values = slices.Delete(m.values, idx, idx+1)
	case idx >= 0:
		m.values = nil
	case m.multi:
		m.values = append(m.values, v)
	default:
		m.values = []T{v}
	}
	m.mu.Unlock()

	m.notifySubscribers()
	return true
}

// Contains implements [Store].
func (m *MemoryStore[T]) Contains(v T) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.values, v)
}

// Snapshot implements [Store]. The result is never nil.
func (m *MemoryStore[T]) Snapshot() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *MemoryStore[T]) snapshotLocked() []T {
	cp := make([]T, len(m.values))
	copy(cp, m.values)
	return cp
}

// Clear implements [Store].
func (m *MemoryStore[T]) Clear() {
	m.mu.Lock()
	m.values = nil
	m.mu.Unlock()

	m.notifySubscribers()
}

// ReplaceAll implements [Store].
func (m *MemoryStore[T]) ReplaceAll(vs []T) {
	deduped := make([]T, 0, len(vs))
	for _, v := range vs {
		if slices.Contains(deduped, v) {
			continue
		}
		deduped = append(deduped, v)
		if !m.multi {
			break
		}
	}

	m.mu.Lock()
	m.values = deduped
	m.mu.Unlock()

	m.notifySubscribers()
}

// Subscribe implements [Store].
//
// The returned channel has a buffer of 100 snapshots. If the buffer fills
// (slow consumer), new snapshots are dropped for this subscriber.
func (m *MemoryStore[T]) Subscribe() <-chan []T {
	ch := make(chan []T, subscriberBuffer)

	m.subMu.Lock()
	defer m.subMu.Unlock()
	if m.closed {
		close(ch)
		return ch
	}
	m.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe implements [Store].
func (m *MemoryStore[T]) Unsubscribe(ch <-chan []T) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// Close implements [Store]. Safe to call multiple times.
func (m *MemoryStore[T]) Close() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	for ch := range m.subscribers {
		close(ch)
	}
	clear(m.subscribers)
}

// notifySubscribers sends the current snapshot to all active subscribers.
//
// This is non-blocking: if a subscriber's channel buffer is full, the
// snapshot is dropped for that subscriber.
func (m *MemoryStore[T]) notifySubscribers() {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	if len(m.subscribers) == 0 {
		return
	}

	m.mu.RLock()
	snap := m.snapshotLocked()
	m.mu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- slices.Clone(snap):
		default:
			// subscriber is slow, drop the snapshot
		}
	}
}
