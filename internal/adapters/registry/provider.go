// Package registry provides the builtin base registry provider.
package registry

import (
	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider implements ports.BaseRegistryProvider from a builtin snapshot of
// per-platform base registries and named extension layers. The snapshot is
// immutable; every call hands out fresh copies so per-platform resolution
// never shares mutable state.
type Provider struct {
	pin string // base snapshot revision, recorded in entry origins
}

// NewProvider creates the builtin provider.
func NewProvider() *Provider {
	return &Provider{pin: basePin}
}

var _ ports.BaseRegistryProvider = (*Provider)(nil)

// basePin identifies the builtin base registry snapshot.
const basePin = "base/2024-06"

// BaseRegistry returns the base registry for the platform.
func (p *Provider) BaseRegistry(platform domain.Platform) (*domain.Registry, error) {
	platform = platform.Canonical()
	supported := false
	for _, known := range domain.DefaultPlatforms() {
		if platform == known {
			supported = true
			break
		}
	}
	if !supported {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "no registry pin for platform"), "platform", string(platform))
	}

	entries := []domain.RegistryEntry{
		{Name: "clang", Kind: domain.KindToolchain, Version: "17.0.6", Origin: p.pin},
		{Name: "pkg-config", Kind: domain.KindTool, Version: "0.29.2", Origin: p.pin},
		{Name: "openssl", Kind: domain.KindLibrary, Version: "3.2.1", Origin: p.pin},
		{Name: "zlib", Kind: domain.KindLibrary, Version: "1.3.1", Origin: p.pin},
		{Name: "rust", Kind: domain.KindToolchain, Version: "1.70.0", Channel: "stable", Origin: p.pin},
		{
			Name: "shell-completions", Kind: domain.KindTool, Version: "1", Origin: p.pin,
			AuxActions: []domain.Action{
				{Run: "install -Dm644 completions/_$program $out/share/zsh/site-functions/_$program"},
				{Run: "install -Dm644 completions/$program.bash $out/share/bash-completion/completions/$program"},
				{Run: "install -Dm644 completions/$program.fish $out/share/fish/vendor_completions.d/$program.fish"},
			},
			AuxArtifacts: []domain.ArtifactDescriptor{
				{Name: "completions-zsh", Kind: "completions", Path: "share/zsh/site-functions"},
				{Name: "completions-bash", Kind: "completions", Path: "share/bash-completion/completions"},
				{Name: "completions-fish", Kind: "completions", Path: "share/fish/vendor_completions.d"},
			},
		},
	}

	switch platform.OS() {
	case "darwin":
		entries = append(entries,
			domain.RegistryEntry{Name: "security-framework", Kind: domain.KindFramework, Version: "11.3", Origin: p.pin},
			domain.RegistryEntry{Name: "core-foundation", Kind: domain.KindFramework, Version: "11.3", Origin: p.pin},
		)
	case "linux":
		entries = append(entries,
			domain.RegistryEntry{Name: "glibc", Kind: domain.KindLibrary, Version: "2.39", Origin: p.pin},
		)
	}

	return domain.NewRegistry(entries...), nil
}

// ExtensionLayer returns the named extension layer for the platform.
func (p *Provider) ExtensionLayer(platform domain.Platform, name string) (domain.ExtensionLayer, error) {
	platform = platform.Canonical()
	switch name {
	case "rust-overlay":
		return domain.ExtensionLayer{
			Name: name,
			Entries: []domain.RegistryEntry{
				{Name: "rust-1.74.1", Kind: domain.KindToolchain, Version: "1.74.1", Channel: "stable", Origin: name},
				{Name: "rust-1.75.0", Kind: domain.KindToolchain, Version: "1.75.0", Channel: "stable", Origin: name},
				{Name: "rust-1.76.0-beta.1", Kind: domain.KindToolchain, Version: "1.76.0-beta.1", Channel: "beta", Origin: name},
				// Shadows the base registry's older stable binding.
				{Name: "rust", Kind: domain.KindToolchain, Version: "1.75.0", Channel: "stable", Origin: name},
				{Name: "rust-stable", Kind: domain.KindToolchain, Version: "1.75.0", Channel: "stable", Origin: name},
			},
		}, nil
	case "rust-tools":
		return domain.ExtensionLayer{
			Name:     name,
			Requires: []string{"rust"},
			Entries: []domain.RegistryEntry{
				{Name: "cargo-audit", Kind: domain.KindTool, Version: "0.20.0", Origin: name},
			},
		}, nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrUnresolvedExtension, "no such extension layer"), "layer", name)
	return domain.ExtensionLayer{}, zerr.With(err, "platform", string(platform))
}
