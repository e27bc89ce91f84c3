package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/internal/adapters/logger"
	"github.com/plankbuild/plank/internal/adapters/registry"
	"github.com/plankbuild/plank/internal/adapters/telemetry/progrock"
	"github.com/plankbuild/plank/internal/core/ports"
)

// NodeID is the unique identifier for the resolver engine node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			provider, err := graft.Dep[ports.BaseRegistryProvider](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(provider, telemetry, log), nil
		},
	})
}
