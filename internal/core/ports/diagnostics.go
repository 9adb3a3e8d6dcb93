package ports

import "github.com/bjorndm/bazel/internal/core/domain"

// Sink accepts diagnostic records. Both caches and the evaluation pipeline
// report through it rather than aborting: diagnostics flow outward, never as
// raised failures.
//
//go:generate go run go.uber.org/mock/mockgen -source=diagnostics.go -destination=mocks/mock_diagnostics.go -package=mocks
type Sink interface {
	Handle(event domain.Event)
}
