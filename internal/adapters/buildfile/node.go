package buildfile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/bjorndm/bazel/internal/core/ports"
)

const NodeID graft.ID = "adapter.buildfile.parser"

// DefaultRuleKinds are the declaration functions registered out of the box.
var DefaultRuleKinds = []string{
	"cc_binary",
	"cc_library",
	"cc_test",
	"filegroup",
	"genrule",
	"sh_binary",
	"sh_test",
}

func init() {
	graft.Register(graft.Node[ports.ScriptParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ScriptParser, error) {
			return NewParser(DefaultRuleKinds), nil
		},
	})
}
