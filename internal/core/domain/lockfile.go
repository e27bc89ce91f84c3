package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// FetchMode describes how a pinned dependency's content is obtained.
type FetchMode string

const (
	// FetchVerified means the dependency carries an integrity proof that the
	// fetch collaborator must check.
	FetchVerified FetchMode = "verified"
	// FetchTrusted means the dependency is fetched directly from its
	// version-control source without integrity verification.
	FetchTrusted FetchMode = "trusted"
)

// PinnedDependency is one entry of a lock record: a fully pinned dependency
// identity.
type PinnedDependency struct {
	// Name is the dependency name, unique within a lock record.
	Name string `yaml:"name"`

	// Version is the pinned version.
	Version string `yaml:"version"`

	// Source is the origin the dependency is fetched from
	// (e.g. "registry+https://..." or "git+https://...").
	Source string `yaml:"source"`

	// Integrity is the content integrity proof (e.g. "sha256-...").
	// Empty exactly when Trusted is set.
	Integrity string `yaml:"integrity,omitempty"`

	// Trusted marks a trusted-fetch entry: fetched from version control
	// without a pinned integrity proof.
	Trusted bool `yaml:"trusted,omitempty"`

	// Requires lists the names of this dependency's own dependencies,
	// recording the transitive source graph inside the lock record.
	Requires []string `yaml:"requires,omitempty"`
}

// Mode returns the fetch mode implied by the entry.
func (d PinnedDependency) Mode() FetchMode {
	if d.Trusted {
		return FetchTrusted
	}
	return FetchVerified
}

// LockRecord maps dependency names to pinned identities. Every dependency
// referenced directly or transitively by a manifest's source build graph must
// have exactly one entry.
type LockRecord struct {
	version int
	deps    map[string]PinnedDependency
}

// NewLockRecord creates an empty lock record with the given format version.
func NewLockRecord(version int) *LockRecord {
	return &LockRecord{
		version: version,
		deps:    make(map[string]PinnedDependency),
	}
}

// Version returns the lock record format version.
func (l *LockRecord) Version() int {
	return l.version
}

// Add inserts a pinned dependency. A duplicate name is a fatal error.
func (l *LockRecord) Add(dep PinnedDependency) error {
	if _, exists := l.deps[dep.Name]; exists {
		err := zerr.With(zerr.Wrap(ErrMalformedLockRecord, "duplicate dependency entry"), "dependency", dep.Name)
		return zerr.With(err, "reason", "duplicate entry")
	}
	l.deps[dep.Name] = dep
	return nil
}

// Get looks up a pinned dependency by name.
func (l *LockRecord) Get(name string) (PinnedDependency, bool) {
	d, ok := l.deps[name]
	return d, ok
}

// Len returns the number of pinned dependencies.
func (l *LockRecord) Len() int {
	return len(l.deps)
}

// Names returns the pinned dependency names in sorted order.
func (l *LockRecord) Names() []string {
	names := make([]string, 0, len(l.deps))
	for name := range l.deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
