package registry_test

import (
	"errors"
	"testing"

	"github.com/plankbuild/plank/internal/adapters/registry"
	"github.com/plankbuild/plank/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestProvider_BaseRegistry(t *testing.T) {
	p := registry.NewProvider()

	darwin, err := p.BaseRegistry(domain.PlatformDarwinARM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !darwin.Has("security-framework") {
		t.Error("expected darwin base registry to provide security-framework")
	}
	if darwin.Has("glibc") {
		t.Error("darwin base registry should not provide glibc")
	}

	linux, err := p.BaseRegistry(domain.PlatformLinuxX86)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linux.Has("security-framework") {
		t.Error("linux base registry should not provide security-framework")
	}
	if !linux.Has("glibc") {
		t.Error("expected linux base registry to provide glibc")
	}
}

func TestProvider_RegistriesAreIndependent(t *testing.T) {
	p := registry.NewProvider()

	a, err := p.BaseRegistry(domain.PlatformLinuxX86)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.BaseRegistry(domain.PlatformLinuxX86)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("expected fresh registry instances per call")
	}
}

func TestProvider_UnsupportedPlatform(t *testing.T) {
	p := registry.NewProvider()

	_, err := p.BaseRegistry("riscv64-plan9")
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if zErr.Metadata()["platform"] != "riscv64-plan9" {
		t.Errorf("expected platform metadata, got %v", zErr.Metadata()["platform"])
	}
}

func TestProvider_ExtensionLayer(t *testing.T) {
	p := registry.NewProvider()

	layer, err := p.ExtensionLayer(domain.PlatformLinuxX86, "rust-overlay")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layer.Name != "rust-overlay" || len(layer.Entries) == 0 {
		t.Errorf("unexpected layer: %+v", layer)
	}

	if _, err := p.ExtensionLayer(domain.PlatformLinuxX86, "fortran-overlay"); !errors.Is(err, domain.ErrUnresolvedExtension) {
		t.Errorf("expected ErrUnresolvedExtension, got %v", err)
	}
}
