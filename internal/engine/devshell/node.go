package devshell

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the dev shell provisioner node.
const NodeID graft.ID = "engine.devshell"

func init() {
	graft.Register(graft.Node[*Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Provisioner, error) {
			return NewProvisioner(), nil
		},
	})
}
