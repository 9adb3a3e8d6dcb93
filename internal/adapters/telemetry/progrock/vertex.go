package progrock

import (
	"github.com/vito/progrock"

	"github.com/bjorndm/bazel/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write records progress output on the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// Done marks the vertex as finished, recording err if non-nil.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}
