package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/internal/adapters/logger"
	"github.com/plankbuild/plank/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher adapter node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(DefaultStoreDir, log), nil
		},
	})
}
