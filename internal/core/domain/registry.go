package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// EntryKind classifies a registry entry.
type EntryKind string

const (
	// KindToolchain marks a compiler toolchain provider (e.g. a rust channel release).
	KindToolchain EntryKind = "toolchain"
	// KindFramework marks a platform framework (e.g. a darwin SDK framework).
	KindFramework EntryKind = "framework"
	// KindLibrary marks a native library provider.
	KindLibrary EntryKind = "library"
	// KindTool marks an auxiliary build tool (e.g. shell completion installer).
	KindTool EntryKind = "tool"
)

// RegistryEntry is one named provider in an extension registry.
type RegistryEntry struct {
	// Name is the case-sensitive lookup key.
	Name string `yaml:"name"`

	// Kind classifies the provider.
	Kind EntryKind `yaml:"kind"`

	// Version is the provider's version string.
	Version string `yaml:"version"`

	// Channel groups toolchain entries into release channels ("stable",
	// "beta", "nightly"). Empty for non-toolchain entries.
	Channel string `yaml:"channel,omitempty"`

	// Origin records where the provider comes from (base registry or the
	// extension layer that added or shadowed it).
	Origin string `yaml:"origin"`

	// AuxActions are actions a tooling entry contributes to build plans that
	// reference it (e.g. installing shell completions after the build).
	AuxActions []Action `yaml:"auxActions,omitempty"`

	// AuxArtifacts are output descriptors for the files AuxActions produce.
	AuxArtifacts []ArtifactDescriptor `yaml:"auxArtifacts,omitempty"`
}

// Registry is an ordered association of named providers. Later additions
// shadow earlier entries of the same name; nothing is ever deleted.
type Registry struct {
	entries map[string]RegistryEntry
	order   []string // first-definition order, stable under shadowing
}

// NewRegistry creates a registry from the given entries, in order.
func NewRegistry(entries ...RegistryEntry) *Registry {
	r := &Registry{entries: make(map[string]RegistryEntry, len(entries))}
	for _, e := range entries {
		r.add(e)
	}
	return r
}

func (r *Registry) add(e RegistryEntry) {
	if _, exists := r.entries[e.Name]; !exists {
		r.order = append(r.order, e.Name)
	}
	r.entries[e.Name] = e
}

// Lookup resolves a name to its current (possibly shadowed) binding.
// Lookups are case-sensitive and must be total for any name a manifest
// references.
func (r *Registry) Lookup(name string) (RegistryEntry, error) {
	e, ok := r.entries[name]
	if !ok {
		return RegistryEntry{}, zerr.With(zerr.Wrap(ErrUnresolvedExtension, "no registry binding"), "entry", name)
	}
	return e, nil
}

// Has reports whether a name is bound in the registry.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of distinct names bound in the registry.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All returns an iterator over entries in first-definition order, with each
// name yielding its current binding.
func (r *Registry) All() iter.Seq[RegistryEntry] {
	return func(yield func(RegistryEntry) bool) {
		for _, name := range r.order {
			if !yield(r.entries[name]) {
				return
			}
		}
	}
}

// clone copies the registry so composition never mutates the base.
func (r *Registry) clone() *Registry {
	c := &Registry{
		entries: make(map[string]RegistryEntry, len(r.entries)),
		order:   make([]string, len(r.order)),
	}
	copy(c.order, r.order)
	for k, v := range r.entries {
		c.entries[k] = v
	}
	return c
}

// ExtensionLayer is a named addendum to a base registry. Layers are applied
// in declaration order; each may add new entries or shadow existing ones.
type ExtensionLayer struct {
	// Name identifies the layer.
	Name string

	// Requires lists entry names that must already be bound in the
	// accumulated registry when this layer is applied. There is no
	// reordering or topological sort: declaration order is the contract.
	Requires []string

	// Entries are added in order; an entry whose name is already bound
	// shadows the earlier binding.
	Entries []RegistryEntry
}

// ComposeRegistry folds the extension layers onto the base registry,
// left to right. The base is never mutated.
func ComposeRegistry(base *Registry, layers []ExtensionLayer) (*Registry, error) {
	composed := base.clone()
	for _, layer := range layers {
		for _, req := range layer.Requires {
			if !composed.Has(req) {
				err := zerr.With(zerr.Wrap(ErrUnresolvedExtension, "layer requirement not satisfied"), "layer", layer.Name)
				return nil, zerr.With(err, "requires", req)
			}
		}
		for _, e := range layer.Entries {
			composed.add(e)
		}
	}
	return composed, nil
}
