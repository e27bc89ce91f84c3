package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedLockRecord is returned when a lock record cannot be parsed,
	// contains a duplicate dependency name, or carries an entry that violates
	// the integrity/trusted-fetch rules.
	ErrMalformedLockRecord = zerr.New("malformed lock record")

	// ErrUnresolvedExtension is returned when an extension layer requires an
	// entry that is not present in the accumulated registry at the point the
	// layer is applied, or when a registry lookup for a name referenced by the
	// manifest fails.
	ErrUnresolvedExtension = zerr.New("unresolved extension")

	// ErrUnsupportedPlatform is returned when a requested platform identifier
	// has no base registry.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrUnpinnedDependency is returned when a dependency referenced by the
	// manifest's build inputs or source graph is absent from the lock record.
	ErrUnpinnedDependency = zerr.New("unpinned dependency")

	// ErrDanglingAlias is returned when an output alias does not dereference
	// to a concrete build plan.
	ErrDanglingAlias = zerr.New("dangling alias")

	// ErrAliasCycle is returned when an output alias chain contains a cycle.
	ErrAliasCycle = zerr.New("alias cycle")

	// ErrInvalidManifest is returned when a manifest violates its invariants.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrUnknownPredicate is returned when a conditional build input is
	// guarded by a predicate the platform context cannot resolve.
	ErrUnknownPredicate = zerr.New("unknown predicate")

	// ErrUnknownOutput is returned when a requested output name is neither a
	// concrete output nor an alias.
	ErrUnknownOutput = zerr.New("unknown output")
)
