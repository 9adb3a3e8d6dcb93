package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/bjorndm/bazel/internal/adapters/config"
	"github.com/bjorndm/bazel/internal/adapters/logger"
	"github.com/bjorndm/bazel/internal/adapters/telemetry/progrock"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/engine/glob"
	"github.com/bjorndm/bazel/internal/engine/packages"
)

const NodeID graft.ID = "app"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			packages.NodeID,
			glob.PoolNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			factory, err := graft.Dep[*packages.Factory](ctx)
			if err != nil {
				return nil, err
			}
			pool, err := graft.Dep[*glob.Pool](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(factory, pool, telemetry, log, settings.Evaluation.Parallelism), nil
		},
	})
}
