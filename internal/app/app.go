// Package app implements the application layer for plank.
package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/plankbuild/plank/internal/adapters/lockfile" //nolint:depguard // Default paths wired in app layer
	"github.com/plankbuild/plank/internal/adapters/manifest" //nolint:depguard // Default paths wired in app layer
	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"github.com/plankbuild/plank/internal/engine/devshell"
	"github.com/plankbuild/plank/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App wires the resolution pipeline: manifest and lock record loading,
// per-platform plan resolution, output graph assembly and the hand-off to
// the build executor or shell launcher.
type App struct {
	manifests   ports.ManifestLoader
	locks       ports.LockReader
	resolver    *resolver.Resolver
	provisioner *devshell.Provisioner
	executor    ports.BuildExecutor
	launcher    ports.ShellLauncher
	logger      ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	locks ports.LockReader,
	res *resolver.Resolver,
	provisioner *devshell.Provisioner,
	executor ports.BuildExecutor,
	launcher ports.ShellLauncher,
	logger ports.Logger,
) *App {
	return &App{
		manifests:   manifests,
		locks:       locks,
		resolver:    res,
		provisioner: provisioner,
		executor:    executor,
		launcher:    launcher,
		logger:      logger,
	}
}

// ResolveOptions configures a resolution run.
type ResolveOptions struct {
	// ManifestPath is the manifest file. Empty means the default filename.
	ManifestPath string

	// LockfilePath overrides the lock record path. Empty means the
	// manifest's lockfile reference, falling back to the default filename.
	LockfilePath string

	// Platforms are the requested target platform identifiers. Empty means
	// the documented default set.
	Platforms []string

	// Output is the output name to hand to the build executor.
	// Empty means "default".
	Output string

	// AllowTrusted opens the resolver-wide trusted-fetch gate.
	AllowTrusted bool

	// Execute hands each resolved plan to the build executor.
	Execute bool
}

// Resolve runs the resolution pipeline for every requested platform.
// Platforms resolve independently: an error on one does not abort the
// others, and the first error (in request order) is returned after all
// platforms finish.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	m, lock, err := a.loadInputs(opts)
	if err != nil {
		return err
	}

	platforms := targetPlatforms(opts.Platforms)
	outputName := opts.Output
	if outputName == "" {
		outputName = "default"
	}

	results := a.resolver.ResolveAll(ctx, m, lock, platforms)

	var firstErr error
	for _, result := range results {
		if result.Err != nil {
			a.logger.Error(result.Err)
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}

		if err := a.handleResult(ctx, m, result, outputName, opts.Execute); err != nil {
			a.logger.Error(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
	}

	return firstErr
}

// handleResult assembles one platform's output graph, resolves the requested
// output and optionally hands the plan to the build executor.
func (a *App) handleResult(ctx context.Context, m *domain.Manifest, result resolver.PlatformResult, outputName string, execute bool) error {
	graph, err := domain.AssembleOutputs(
		result.Platform,
		map[string]*domain.BuildPlan{m.Package: result.Plan},
		domain.DefaultAliases(m.Package),
	)
	if err != nil {
		return err
	}

	plan, err := graph.Resolve(outputName)
	if err != nil {
		return err
	}

	fingerprint, err := plan.Fingerprint()
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("resolved %s for %s (plan %s, %d dependencies)",
		plan.Package, plan.Platform, fingerprint, len(plan.Dependencies)))

	if !execute {
		return nil
	}
	artifact, err := a.executor.Execute(ctx, plan)
	if err != nil {
		return zerr.With(err, "platform", string(result.Platform))
	}
	a.logger.Info("artifact at " + artifact)
	return nil
}

// ShellOptions configures dev shell provisioning.
type ShellOptions struct {
	ManifestPath string
	Platform     string
	Channel      string
	Constraint   string
}

// Shell provisions the development environment for one platform and
// delegates to the shell launcher.
func (a *App) Shell(ctx context.Context, opts ShellOptions) error {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = manifest.DefaultManifest
	}
	m, err := a.manifests.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	platform := domain.Platform(opts.Platform)
	if opts.Platform == "" {
		platform = HostPlatform()
	}

	pctx, err := a.resolver.BuildContext(platform, m.Extensions)
	if err != nil {
		return err
	}

	channel := opts.Channel
	if channel == "" {
		channel = "stable"
	}
	env, err := a.provisioner.Provision(pctx, devshell.ToolchainSelector{
		Channel:    channel,
		Constraint: opts.Constraint,
	})
	if err != nil {
		return err
	}

	return a.launcher.Launch(ctx, env)
}

func (a *App) loadInputs(opts ResolveOptions) (*domain.Manifest, *domain.LockRecord, error) {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = manifest.DefaultManifest
	}
	m, err := a.manifests.Load(manifestPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load manifest")
	}

	lockPath := opts.LockfilePath
	if lockPath == "" {
		lockPath = m.Lockfile
	}
	if lockPath == "" {
		lockPath = lockfile.DefaultLockfile
	}
	lock, err := a.locks.Read(lockPath, ports.LockReadOptions{AllowTrustedFetch: opts.AllowTrusted})
	if err != nil {
		return nil, nil, err
	}

	return m, lock, nil
}

func targetPlatforms(requested []string) []domain.Platform {
	if len(requested) == 0 {
		return domain.DefaultPlatforms()
	}
	platforms := make([]domain.Platform, len(requested))
	for i, p := range requested {
		platforms[i] = domain.Platform(p)
	}
	return platforms
}

// HostPlatform maps the running process's OS/architecture to a platform
// identifier.
func HostPlatform() domain.Platform {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return domain.Platform(arch + "-" + runtime.GOOS)
}
