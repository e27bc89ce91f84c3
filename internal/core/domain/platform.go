// Package domain contains the core domain models for build plan resolution.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies a target OS/architecture combination using the
// conventional <arch>-<os> form (e.g. "x86_64-linux", "aarch64-darwin").
type Platform string

// The documented default platform set.
const (
	PlatformLinuxX86    Platform = "x86_64-linux"
	PlatformLinuxARM    Platform = "aarch64-linux"
	PlatformDarwinX86   Platform = "x86_64-darwin"
	PlatformDarwinARM   Platform = "aarch64-darwin"
	PlatformMacOSARM64  Platform = "macos-arm64"
	PlatformLinuxX86_64 Platform = "linux-x86_64"
)

// DefaultPlatforms returns the fixed platform set used when the caller does
// not request specific targets.
func DefaultPlatforms() []Platform {
	return []Platform{
		PlatformLinuxX86,
		PlatformLinuxARM,
		PlatformDarwinX86,
		PlatformDarwinARM,
	}
}

// Canonical normalizes alternative spellings ("macos-arm64", "linux-x86_64")
// to the <arch>-<os> form. Unknown identifiers pass through unchanged so the
// base registry provider can reject them.
func (p Platform) Canonical() Platform {
	switch p {
	case PlatformMacOSARM64:
		return PlatformDarwinARM
	case "macos-x86_64":
		return PlatformDarwinX86
	case PlatformLinuxX86_64:
		return PlatformLinuxX86
	case "linux-aarch64":
		return PlatformLinuxARM
	}
	return p
}

// OS returns the operating system component of the platform identifier.
func (p Platform) OS() string {
	c := string(p.Canonical())
	if i := strings.LastIndex(c, "-"); i >= 0 {
		return c[i+1:]
	}
	return c
}

// Arch returns the architecture component of the platform identifier.
func (p Platform) Arch() string {
	c := string(p.Canonical())
	if i := strings.LastIndex(c, "-"); i >= 0 {
		return c[:i]
	}
	return ""
}

// PlatformContext is the frozen evaluation environment for one target
// platform: its identifier, the composed extension registry and the set of
// conditional predicates evaluated once at construction time.
//
// A context is immutable after construction and is never shared across
// platforms, so per-platform resolution needs no synchronization.
type PlatformContext struct {
	platform   Platform
	registry   *Registry
	predicates map[string]bool
}

// NewPlatformContext builds the context for the given platform, evaluating
// and freezing its conditional predicates.
func NewPlatformContext(platform Platform, registry *Registry) *PlatformContext {
	platform = platform.Canonical()
	predicates := map[string]bool{
		"is-linux":   platform.OS() == "linux",
		"is-darwin":  platform.OS() == "darwin",
		"is-macos":   platform.OS() == "darwin",
		"is-x86_64":  platform.Arch() == "x86_64",
		"is-aarch64": platform.Arch() == "aarch64",
	}
	return &PlatformContext{
		platform:   platform,
		registry:   registry,
		predicates: predicates,
	}
}

// Platform returns the canonical platform identifier.
func (c *PlatformContext) Platform() Platform {
	return c.platform
}

// Registry returns the composed extension registry for this platform.
func (c *PlatformContext) Registry() *Registry {
	return c.registry
}

// Predicate evaluates a conditional predicate by name. Predicates were frozen
// at construction; a name outside the frozen set is a configuration defect.
func (c *PlatformContext) Predicate(name string) (bool, error) {
	v, ok := c.predicates[name]
	if !ok {
		err := zerr.With(zerr.Wrap(ErrUnknownPredicate, "predicate outside the frozen set"), "predicate", name)
		return false, zerr.With(err, "platform", string(c.platform))
	}
	return v, nil
}
