package domain

import (
	"fmt"
	"sync"

	"go.trai.ch/zerr"
)

// PublishMap is the single concurrency primitive shared by the artifact
// metadata cache and the glob memoization table: an atomic
// "insert-if-absent, otherwise assert equality" map.
//
// Once a value is published for a key, every subsequent read returns that
// exact value. A losing concurrent computation that disagrees with the
// already published value is a fatal consistency violation.
type PublishMap[K comparable, V comparable] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewPublishMap creates an empty PublishMap.
func NewPublishMap[K comparable, V comparable]() *PublishMap[K, V] {
	return &PublishMap[K, V]{entries: make(map[K]V)}
}

// Get returns the published value for key, if any.
func (m *PublishMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Publish inserts value for key if absent and returns it. If a value is
// already present it is returned instead, and ErrConsistency is raised when
// the two disagree: another writer computed a different answer for the same
// key, presumably because the underlying data changed between reads.
func (m *PublishMap[K, V]) Publish(key K, value V) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.entries[key]
	if !ok {
		m.entries[key] = value
		return value, nil
	}
	if old != value {
		err := zerr.With(ErrConsistency, "published", fmt.Sprintf("%+v", old))
		return old, zerr.With(err, "computed", fmt.Sprintf("%+v", value))
	}
	return old, nil
}

// LoadOrStore inserts value for key if absent and returns the winner. Unlike
// Publish it never fails: callers join the first published value, which is
// how in-flight glob computations are shared.
func (m *PublishMap[K, V]) LoadOrStore(key K, value V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.entries[key]; ok {
		return old
	}
	m.entries[key] = value
	return value
}

// Replace unconditionally stores value for key. It is reserved for injection
// paths where an external backend is authoritative over a previously
// computed entry.
func (m *PublishMap[K, V]) Replace(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Delete removes the entry for key.
func (m *PublishMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Len returns the number of published entries.
func (m *PublishMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Snapshot returns a copy of the published entries.
func (m *PublishMap[K, V]) Snapshot() map[K]V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[K]V, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
