package diagnostics

import (
	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

var _ ports.Sink = Discard{}

// Discard drops every event. The prefetch pass runs with it because its
// diagnostics will be reproduced by the authoritative pass anyway.
type Discard struct{}

// Handle drops the event.
func (Discard) Handle(domain.Event) {}
