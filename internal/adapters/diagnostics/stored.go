// Package diagnostics provides Sink implementations for build file
// evaluation: a storing sink that records events for replay, and a discard
// sink for the warm-up pass whose output is thrown away.
package diagnostics

import (
	"sync"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

var _ ports.Sink = (*Stored)(nil)

// Stored records every event it receives, preserving order. Parse
// diagnostics are collected once and replayed into each authoritative
// evaluation instead of re-parsing.
type Stored struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewStored creates an empty storing sink.
func NewStored() *Stored {
	return &Stored{}
}

// Handle records the event.
func (s *Stored) Handle(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// HasErrors reports whether any recorded event has error severity.
func (s *Stored) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Severity == domain.SeverityError {
			return true
		}
	}
	return false
}

// Events returns the recorded events in arrival order.
func (s *Stored) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Replay forwards every recorded event to sink, in order.
func (s *Stored) Replay(sink ports.Sink) {
	for _, e := range s.Events() {
		sink.Handle(e)
	}
}
