package packages

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/bjorndm/bazel/internal/adapters/buildfile"
	"github.com/bjorndm/bazel/internal/adapters/config"
	"github.com/bjorndm/bazel/internal/adapters/logger"
	"github.com/bjorndm/bazel/internal/adapters/telemetry/progrock"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/engine/glob"
)

const NodeID graft.ID = "engine.packages.factory"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			buildfile.NodeID,
			glob.PoolNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			parser, err := graft.Dep[ports.ScriptParser](ctx)
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

			opts := []Option{
				WithDefaultVisibility(settings.Evaluation.DefaultVisibility),
			}
			if settings.Evaluation.RetainAST {
				opts = append(opts, WithRetainAST())
			}
			return NewFactory(pool, parser, telemetry, log, opts...), nil
		},
	})
}
