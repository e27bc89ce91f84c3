// Package devshell provisions interactive development environments.
package devshell

import (
	goversion "github.com/hashicorp/go-version"
	"github.com/plankbuild/plank/internal/core/domain"
	"go.trai.ch/zerr"
)

// ToolchainSelector picks a pinned toolchain from a composed registry:
// the newest release of the named channel, optionally narrowed by a version
// constraint (e.g. "~> 1.75").
type ToolchainSelector struct {
	// Channel is the release channel ("stable", "beta", "nightly").
	Channel string

	// Constraint optionally restricts candidate versions, in the usual
	// constraint syntax (">= 1.74, < 2.0").
	Constraint string
}

// Provisioner resolves development environment descriptors. It performs no
// build actions: it only decides which registry entries the shell needs.
type Provisioner struct{}

// NewProvisioner creates a new Provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Provision selects the toolchain matching the selector from the platform's
// composed registry and lists the tool entries to expose alongside it.
func (p *Provisioner) Provision(pctx *domain.PlatformContext, sel ToolchainSelector) (*domain.EnvironmentDescriptor, error) {
	toolchain, err := selectToolchain(pctx, sel)
	if err != nil {
		return nil, err
	}

	var entries []domain.RegistryEntry
	for e := range pctx.Registry().All() {
		if e.Kind == domain.KindTool {
			entries = append(entries, e)
		}
	}

	return &domain.EnvironmentDescriptor{
		Platform:  pctx.Platform(),
		Toolchain: toolchain,
		Entries:   entries,
	}, nil
}

func selectToolchain(pctx *domain.PlatformContext, sel ToolchainSelector) (domain.RegistryEntry, error) {
	var constraints goversion.Constraints
	if sel.Constraint != "" {
		c, err := goversion.NewConstraint(sel.Constraint)
		if err != nil {
			return domain.RegistryEntry{}, zerr.With(zerr.Wrap(err, "invalid toolchain constraint"), "constraint", sel.Constraint)
		}
		constraints = c
	}

	var (
		best        domain.RegistryEntry
		bestVersion *goversion.Version
	)
	for e := range pctx.Registry().All() {
		if e.Kind != domain.KindToolchain || e.Channel != sel.Channel {
			continue
		}
		v, err := goversion.NewVersion(e.Version)
		if err != nil {
			// Unparseable versions simply never win the selection.
			continue
		}
		if constraints != nil && !constraints.Check(v) {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best, bestVersion = e, v
		}
	}

	if bestVersion == nil {
		err := zerr.With(zerr.Wrap(domain.ErrUnresolvedExtension, "no toolchain satisfies the selection"), "channel", sel.Channel)
		if sel.Constraint != "" {
			err = zerr.With(err, "constraint", sel.Constraint)
		}
		return domain.RegistryEntry{}, zerr.With(err, "platform", string(pctx.Platform()))
	}
	return best, nil
}
