package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"github.com/plankbuild/plank/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/plankbuild/plank/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"github.com/plankbuild/plank/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"github.com/plankbuild/plank/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/plankbuild/plank/internal/core/ports"
	"github.com/plankbuild/plank/internal/engine/devshell"
	"github.com/plankbuild/plank/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			lockfile.NodeID,
			resolver.NodeID,
			devshell.NodeID,
			shell.ExecutorNodeID,
			shell.LauncherNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockReader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	provisioner, err := graft.Dep[*devshell.Provisioner](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.BuildExecutor](ctx)
	if err != nil {
		return nil, err
	}

	launcher, err := graft.Dep[ports.ShellLauncher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, locks, res, provisioner, executor, launcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
