package ports

import (
	"context"

	"github.com/plankbuild/plank/internal/core/domain"
)

// BuildExecutor consumes a build plan and performs the actual build and
// installation. The core never sees compiler output; it only receives the
// final artifact path.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type BuildExecutor interface {
	// Execute runs the plan's actions in order and returns the artifact root.
	Execute(ctx context.Context, plan *domain.BuildPlan) (artifactPath string, err error)
}

// Fetcher resolves a pinned dependency identity to local content, either via
// integrity-checked retrieval or a trusted version-control fetch. Retries,
// if any, live behind this interface.
type Fetcher interface {
	// Fetch materializes the dependency and returns its local path.
	Fetch(ctx context.Context, dep domain.PinnedDependency) (string, error)
}

// ShellLauncher constructs the interactive shell process for a provisioned
// development environment.
type ShellLauncher interface {
	// Launch starts an interactive shell exposing the environment's entries.
	Launch(ctx context.Context, env *domain.EnvironmentDescriptor) error
}
