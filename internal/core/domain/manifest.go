package domain

import "go.trai.ch/zerr"

// Action is one build or install step. Actions are carried verbatim into
// build plans and executed in order by the build executor.
type Action struct {
	// Run is the shell command to execute.
	Run string `yaml:"run"`
}

// ConditionalInputs guards a list of native build inputs behind a platform
// predicate. The inputs participate in resolution only on platforms where
// the predicate evaluates true.
type ConditionalInputs struct {
	// When names the predicate (e.g. "is-macos").
	When string `yaml:"when"`

	// Inputs are the guarded native build input names.
	Inputs []string `yaml:"inputs"`
}

// Metadata is the manifest's descriptive block, attached unchanged to every
// build plan.
type Metadata struct {
	Description string `yaml:"description,omitempty"`
	Homepage    string `yaml:"homepage,omitempty"`
	License     string `yaml:"license,omitempty"`

	// Program is the declared entry-point program name.
	Program string `yaml:"program,omitempty"`
}

// Manifest is the declarative description of one package's build: source
// location, lock record reference, native and conditional build inputs,
// build/install actions and metadata. It is loaded once per resolution and
// never mutated.
type Manifest struct {
	// Package is the package name. Must be non-empty.
	Package string

	// Source is the package source location. Must be non-empty.
	Source string

	// Lockfile is the path of the dependency lock record.
	Lockfile string

	// Toolchain names the registry entry providing the compiler toolchain.
	Toolchain string

	// Extensions names the extension layers composed onto the base registry,
	// in declaration order.
	Extensions []string

	// Inputs are the unconditional native build inputs, in declared order.
	Inputs []string

	// ConditionalInputs are per-platform guarded inputs, in declared order.
	ConditionalInputs []ConditionalInputs

	// Dependencies are the roots of the package's source dependency graph;
	// the lock record must pin them and their transitive closure.
	Dependencies []string

	// Tooling names registry entries that contribute auxiliary actions to
	// the plan (e.g. shell completion installation).
	Tooling []string

	// Actions are the ordered build/install steps.
	Actions []Action

	// Metadata is the descriptive block.
	Metadata Metadata
}

// Validate checks the manifest invariants.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		return zerr.With(zerr.Wrap(ErrInvalidManifest, "manifest validation failed"), "reason", "package name is empty")
	}
	if m.Source == "" {
		err := zerr.With(zerr.Wrap(ErrInvalidManifest, "manifest validation failed"), "package", m.Package)
		return zerr.With(err, "reason", "source location is empty")
	}
	return nil
}
