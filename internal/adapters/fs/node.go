package fs

import (
	"context"
	"time"

	"github.com/grindlemire/graft"

	"github.com/bjorndm/bazel/internal/adapters/config"
	"github.com/bjorndm/bazel/internal/core/ports"
)

const (
	// MonitorNodeID identifies the timestamp granularity monitor node.
	MonitorNodeID graft.ID = "adapter.fs.granularity_monitor"
	// TrackerNodeID identifies the file state tracker node.
	TrackerNodeID graft.ID = "adapter.fs.tracker"
)

func init() {
	graft.Register(graft.Node[*GranularityMonitor]{
		ID:        MonitorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*GranularityMonitor, error) {
			return NewGranularityMonitor(time.Now()), nil
		},
	})

	graft.Register(graft.Node[ports.FileStateTracker]{
		ID:        TrackerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, MonitorNodeID},
		Run: func(ctx context.Context) (ports.FileStateTracker, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			monitor, err := graft.Dep[*GranularityMonitor](ctx)
			if err != nil {
				return nil, err
			}
			policy := DigestPolicy{
				Enabled: settings.Digest.Enabled,
				MinSize: settings.Digest.MinSize,
			}
			return NewTracker(policy, monitor), nil
		},
	})
}
