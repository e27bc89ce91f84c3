package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/internal/adapters/fetch"
	"github.com/plankbuild/plank/internal/adapters/logger"
	"github.com/plankbuild/plank/internal/core/ports"
)

const (
	// ExecutorNodeID is the unique identifier for the build executor node.
	ExecutorNodeID graft.ID = "adapter.build_executor"
	// LauncherNodeID is the unique identifier for the shell launcher node.
	LauncherNodeID graft.ID = "adapter.shell_launcher"
)

// DefaultWorkDir is the artifact root used when none is configured.
const DefaultWorkDir = ".plank/out"

func init() {
	graft.Register(graft.Node[ports.BuildExecutor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fetch.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildExecutor, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(fetcher, log, DefaultWorkDir), nil
		},
	})

	graft.Register(graft.Node[ports.ShellLauncher]{
		ID:        LauncherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ShellLauncher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLauncher(log), nil
		},
	})
}
