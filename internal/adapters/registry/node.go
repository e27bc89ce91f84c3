package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/internal/core/ports"
)

// NodeID is the unique identifier for the base registry provider node.
const NodeID graft.ID = "adapter.registry_provider"

func init() {
	graft.Register(graft.Node[ports.BaseRegistryProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BaseRegistryProvider, error) {
			return NewProvider(), nil
		},
	})
}
