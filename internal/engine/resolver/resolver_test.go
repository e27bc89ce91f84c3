package resolver_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"github.com/plankbuild/plank/internal/engine/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

// fakeProvider serves a small fixed registry for the default platforms.
type fakeProvider struct{}

func (fakeProvider) BaseRegistry(platform domain.Platform) (*domain.Registry, error) {
	platform = platform.Canonical()
	for _, known := range domain.DefaultPlatforms() {
		if platform == known {
			return domain.NewRegistry(
				domain.RegistryEntry{Name: "rust-stable", Kind: domain.KindToolchain, Version: "1.75.0", Channel: "stable", Origin: "base"},
				domain.RegistryEntry{
					Name: "shell-completions", Kind: domain.KindTool, Version: "1", Origin: "base",
					AuxActions:   []domain.Action{{Run: "install-completions"}},
					AuxArtifacts: []domain.ArtifactDescriptor{{Name: "completions", Kind: "completions", Path: "share"}},
				},
			), nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "no registry pin for platform"), "platform", string(platform))
}

func (fakeProvider) ExtensionLayer(_ domain.Platform, name string) (domain.ExtensionLayer, error) {
	if name != "rust-overlay" {
		return domain.ExtensionLayer{}, zerr.With(zerr.Wrap(domain.ErrUnresolvedExtension, "no such extension layer"), "layer", name)
	}
	return domain.ExtensionLayer{
		Name: name,
		Entries: []domain.RegistryEntry{
			{Name: "rust-stable", Kind: domain.KindToolchain, Version: "1.75.0", Channel: "stable", Origin: name},
		},
	}, nil
}

type nopTelemetry struct{}

func (nopTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, nopVertex{}
}
func (nopTelemetry) Close() error { return nil }

type nopVertex struct{}

func (nopVertex) Stdout() io.Writer { return io.Discard }
func (nopVertex) Stderr() io.Writer { return io.Discard }
func (nopVertex) Complete(error)    {}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func newResolver() *resolver.Resolver {
	return resolver.New(fakeProvider{}, nopTelemetry{}, nopLogger{})
}

func sampleManifest() *domain.Manifest {
	return &domain.Manifest{
		Package:    "sheldon",
		Source:     ".",
		Toolchain:  "rust-stable",
		Extensions: []string{"rust-overlay"},
		Inputs:     []string{"pkg-config", "openssl"},
		ConditionalInputs: []domain.ConditionalInputs{
			{When: "is-macos", Inputs: []string{"security-framework"}},
		},
		Dependencies: []string{"serde"},
		Tooling:      []string{"shell-completions"},
		Actions: []domain.Action{
			{Run: "cargo build --release"},
		},
		Metadata: domain.Metadata{Program: "sheldon", License: "MIT OR Apache-2.0"},
	}
}

func sampleLock(t *testing.T) *domain.LockRecord {
	t.Helper()
	lock := domain.NewLockRecord(1)
	for _, dep := range []domain.PinnedDependency{
		{Name: "pkg-config", Version: "0.29.2", Source: "registry", Integrity: "sha256-a"},
		{Name: "openssl", Version: "3.2.1", Source: "registry", Integrity: "sha256-b", Requires: []string{"zlib"}},
		{Name: "zlib", Version: "1.3.1", Source: "registry", Integrity: "sha256-c"},
		{Name: "security-framework", Version: "2.9.2", Source: "registry", Integrity: "sha256-d"},
		{Name: "serde", Version: "1.0.195", Source: "registry", Integrity: "sha256-e"},
	} {
		require.NoError(t, lock.Add(dep))
	}
	return lock
}

func resolveFor(t *testing.T, platform domain.Platform) *domain.BuildPlan {
	t.Helper()
	r := newResolver()
	pctx, err := r.BuildContext(platform, sampleManifest().Extensions)
	require.NoError(t, err)
	plan, err := resolver.Resolve(sampleManifest(), sampleLock(t), pctx)
	require.NoError(t, err)
	return plan
}

func TestResolve_ConditionalInclusion(t *testing.T) {
	// Scenario: a conditional input guarded by is-macos is present on
	// macos-arm64 and absent on linux-x86_64.
	mac := resolveFor(t, "macos-arm64")
	assert.Contains(t, mac.Inputs, "security-framework")

	linux := resolveFor(t, "linux-x86_64")
	assert.NotContains(t, linux.Inputs, "security-framework")
}

func TestResolve_DedupPrecedence(t *testing.T) {
	m := sampleManifest()
	// openssl appears unconditionally and in an included conditional list;
	// it must appear exactly once, at its first-seen position.
	m.ConditionalInputs = []domain.ConditionalInputs{
		{When: "is-linux", Inputs: []string{"openssl", "glibc"}},
	}

	lock := sampleLock(t)
	require.NoError(t, lock.Add(domain.PinnedDependency{
		Name: "glibc", Version: "2.39", Source: "registry", Integrity: "sha256-f",
	}))

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, m.Extensions)
	require.NoError(t, err)
	plan, err := resolver.Resolve(m, lock, pctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg-config", "openssl", "glibc"}, plan.Inputs)
}

func TestResolve_UnpinnedDependency(t *testing.T) {
	// Scenario: the lock record omits a dependency the manifest names.
	lock := domain.NewLockRecord(1)
	require.NoError(t, lock.Add(domain.PinnedDependency{
		Name: "pkg-config", Version: "0.29.2", Source: "registry", Integrity: "sha256-a",
	}))

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, sampleManifest().Extensions)
	require.NoError(t, err)

	_, err = resolver.Resolve(sampleManifest(), lock, pctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnpinnedDependency)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "openssl", zErr.Metadata()["dependency"])
}

func TestResolve_TransitiveClosure(t *testing.T) {
	// zlib is referenced only through openssl's requires list.
	plan := resolveFor(t, domain.PlatformLinuxX86)

	var names []string
	for _, dep := range plan.Dependencies {
		names = append(names, dep.Name)
	}
	assert.Contains(t, names, "zlib")
	assert.IsIncreasing(t, names)
}

func TestResolve_MissingTransitiveDependency(t *testing.T) {
	lock := sampleLock(t)
	m := sampleManifest()
	m.Dependencies = append(m.Dependencies, "tokio")

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, m.Extensions)
	require.NoError(t, err)

	_, err = resolver.Resolve(m, lock, pctx)
	assert.ErrorIs(t, err, domain.ErrUnpinnedDependency)
}

func TestResolve_Deterministic(t *testing.T) {
	a, err := resolveFor(t, domain.PlatformDarwinARM).Encode()
	require.NoError(t, err)
	b, err := resolveFor(t, domain.PlatformDarwinARM).Encode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "identical inputs must produce byte-identical plans")
}

func TestResolve_AuxiliaryActions(t *testing.T) {
	plan := resolveFor(t, domain.PlatformLinuxX86)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, "cargo build --release", plan.Actions[0].Run)
	assert.Equal(t, "install-completions", plan.Actions[1].Run)

	var kinds []string
	for _, a := range plan.Artifacts {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []string{"binary", "completions"}, kinds)
}

func TestResolve_TrustedProvenance(t *testing.T) {
	lock := sampleLock(t)
	m := sampleManifest()
	m.Dependencies = append(m.Dependencies, "fork")
	require.NoError(t, lock.Add(domain.PinnedDependency{
		Name: "fork", Version: "0.1.0", Source: "git+https://example.com/fork", Trusted: true,
	}))

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, m.Extensions)
	require.NoError(t, err)
	plan, err := resolver.Resolve(m, lock, pctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"fork"}, plan.Provenance.Trusted)
	assert.NotContains(t, plan.Provenance.Verified, "fork")
}

func TestResolve_UnknownPredicate(t *testing.T) {
	m := sampleManifest()
	m.ConditionalInputs = []domain.ConditionalInputs{
		{When: "is-windows", Inputs: []string{"win-sdk"}},
	}

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, m.Extensions)
	require.NoError(t, err)

	_, err = resolver.Resolve(m, sampleLock(t), pctx)
	assert.ErrorIs(t, err, domain.ErrUnknownPredicate)
}

func TestResolve_UnknownToolchain(t *testing.T) {
	m := sampleManifest()
	m.Toolchain = "zig"

	r := newResolver()
	pctx, err := r.BuildContext(domain.PlatformLinuxX86, m.Extensions)
	require.NoError(t, err)

	_, err = resolver.Resolve(m, sampleLock(t), pctx)
	assert.ErrorIs(t, err, domain.ErrUnresolvedExtension)
}

func TestBuildContext_UnsupportedPlatform(t *testing.T) {
	r := newResolver()
	_, err := r.BuildContext("sparc64-solaris", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestResolveAll_PartialSuccess(t *testing.T) {
	r := newResolver()
	platforms := []domain.Platform{
		domain.PlatformLinuxX86,
		"sparc64-solaris",
		domain.PlatformDarwinARM,
	}

	results := r.ResolveAll(context.Background(), sampleManifest(), sampleLock(t), platforms)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Plan)
	assert.Equal(t, domain.PlatformLinuxX86, results[0].Plan.Platform)

	assert.ErrorIs(t, results[1].Err, domain.ErrUnsupportedPlatform)
	assert.Nil(t, results[1].Plan)

	assert.NoError(t, results[2].Err)
	require.NotNil(t, results[2].Plan)
	assert.Contains(t, results[2].Plan.Inputs, "security-framework")
}
