// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/plankbuild/plank/internal/adapters/fetch"
	_ "github.com/plankbuild/plank/internal/adapters/lockfile"
	_ "github.com/plankbuild/plank/internal/adapters/logger"
	_ "github.com/plankbuild/plank/internal/adapters/manifest"
	_ "github.com/plankbuild/plank/internal/adapters/registry"
	_ "github.com/plankbuild/plank/internal/adapters/shell"
	_ "github.com/plankbuild/plank/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/plankbuild/plank/internal/app"
	_ "github.com/plankbuild/plank/internal/engine/devshell"
	_ "github.com/plankbuild/plank/internal/engine/resolver"
)
