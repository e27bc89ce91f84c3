// Package resolver implements platform context construction and build plan
// resolution.
package resolver

import (
	"context"
	"fmt"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver turns a manifest, a lock record and a set of target platforms
// into per-platform build plans.
type Resolver struct {
	provider  ports.BaseRegistryProvider
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Resolver.
func New(provider ports.BaseRegistryProvider, telemetry ports.Telemetry, logger ports.Logger) *Resolver {
	return &Resolver{
		provider:  provider,
		telemetry: telemetry,
		logger:    logger,
	}
}

// BuildContext constructs the evaluation context for one target platform:
// base registry, extension layers folded on in declaration order, predicates
// frozen. Each call builds an independent context; nothing is shared.
func (r *Resolver) BuildContext(platform domain.Platform, extensions []string) (*domain.PlatformContext, error) {
	base, err := r.provider.BaseRegistry(platform)
	if err != nil {
		return nil, err
	}

	layers := make([]domain.ExtensionLayer, 0, len(extensions))
	for _, name := range extensions {
		layer, err := r.provider.ExtensionLayer(platform, name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	composed, err := domain.ComposeRegistry(base, layers)
	if err != nil {
		return nil, zerr.With(err, "platform", string(platform))
	}

	return domain.NewPlatformContext(platform, composed), nil
}

// PlatformResult is the outcome of one platform's resolution: a build plan
// or a tagged error. Failures on one platform never abort the others.
type PlatformResult struct {
	Platform domain.Platform
	Plan     *domain.BuildPlan
	Err      error
}

// ResolveAll resolves the manifest for every requested platform
// concurrently. Each platform is an independent pure computation; results
// come back in request order, each holding a plan or that platform's error.
func (r *Resolver) ResolveAll(
	ctx context.Context,
	m *domain.Manifest,
	lock *domain.LockRecord,
	platforms []domain.Platform,
) []PlatformResult {
	results := make([]PlatformResult, len(platforms))

	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range platforms {
		g.Go(func() error {
			vctx, vertex := r.telemetry.Record(gctx, fmt.Sprintf("resolve %s (%s)", m.Package, platform))
			plan, err := r.resolvePlatform(vctx, m, lock, platform)
			vertex.Complete(err)

			results[i] = PlatformResult{Platform: platform.Canonical(), Plan: plan, Err: err}
			// Errors are configuration defects scoped to one platform;
			// sibling resolutions continue.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Resolver) resolvePlatform(
	ctx context.Context,
	m *domain.Manifest,
	lock *domain.LockRecord,
	platform domain.Platform,
) (*domain.BuildPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "resolution cancelled")
	}
	pctx, err := r.BuildContext(platform, m.Extensions)
	if err != nil {
		return nil, err
	}
	return Resolve(m, lock, pctx)
}
