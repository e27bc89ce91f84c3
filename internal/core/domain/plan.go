package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ArtifactDescriptor names one output artifact of a build plan.
type ArtifactDescriptor struct {
	// Name identifies the artifact within the plan.
	Name string `yaml:"name"`

	// Kind classifies the artifact ("binary", "completions", ...).
	Kind string `yaml:"kind"`

	// Path is the install path relative to the artifact root.
	Path string `yaml:"path"`
}

// Provenance records, per fetch mode, which pinned dependencies a plan
// contains, so downstream auditing can distinguish integrity-verified
// dependencies from trusted version-control fetches.
type Provenance struct {
	// Verified lists dependencies with a pinned integrity proof, sorted.
	Verified []string `yaml:"verified,omitempty"`

	// Trusted lists trusted-fetch dependencies, sorted.
	Trusted []string `yaml:"trusted,omitempty"`
}

// BuildPlan is the fully resolved, reproducible description of what to build
// for one platform. It is created by the resolver, consumed by the build
// executor and never mutated after creation.
type BuildPlan struct {
	// Package is the package name from the manifest.
	Package string `yaml:"package"`

	// Platform is the canonical target platform identifier.
	Platform Platform `yaml:"platform"`

	// Toolchain is the resolved compiler toolchain registry entry.
	Toolchain RegistryEntry `yaml:"toolchain"`

	// Inputs is the merged, deduplicated native build input list,
	// preserving first-seen declaration order.
	Inputs []string `yaml:"inputs"`

	// Dependencies is the fully pinned dependency set, sorted by name.
	Dependencies []PinnedDependency `yaml:"dependencies"`

	// Actions is the ordered build/install action list: the manifest's own
	// actions followed by registry-provided auxiliary actions.
	Actions []Action `yaml:"actions"`

	// Artifacts describes the plan's named outputs.
	Artifacts []ArtifactDescriptor `yaml:"artifacts"`

	// Metadata is the manifest metadata, carried unchanged.
	Metadata Metadata `yaml:"metadata"`

	// Provenance distinguishes verified from trusted-fetch dependencies.
	Provenance Provenance `yaml:"provenance"`
}

// Encode renders the plan in its canonical byte form. Field order is fixed
// and no map types appear in the plan, so identical plans encode to
// identical bytes.
func (p *BuildPlan) Encode() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode build plan")
	}
	return data, nil
}

// Fingerprint returns a short stable digest of the plan's canonical encoding.
func (p *BuildPlan) Fingerprint() (string, error) {
	data, err := p.Encode()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// EnvironmentDescriptor lists the registry entries an interactive development
// shell must make available. Constructing the shell process itself is the
// shell launcher's job.
type EnvironmentDescriptor struct {
	// Platform is the canonical platform the environment targets.
	Platform Platform `yaml:"platform"`

	// Toolchain is the pinned toolchain selected for the shell.
	Toolchain RegistryEntry `yaml:"toolchain"`

	// Entries are the additional registry entries to expose in the shell.
	Entries []RegistryEntry `yaml:"entries,omitempty"`
}
