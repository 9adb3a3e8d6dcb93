package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of package evaluations.
type Telemetry interface {
	// Record starts recording a unit of work, typically one package
	// evaluation.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	io.Writer

	// Done completes the vertex, recording err if non-nil.
	Done(err error)
}
