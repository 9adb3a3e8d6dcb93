package glob

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/bjorndm/bazel/internal/adapters/config"
)

const PoolNodeID graft.ID = "engine.glob.pool"

func init() {
	graft.Register(graft.Node[*Pool]{
		ID:        PoolNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Pool, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewPool(settings.Glob.PoolWorkers, settings.Glob.IdleTimeout), nil
		},
	})
}
