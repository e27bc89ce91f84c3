package ports

import "github.com/plankbuild/plank/internal/core/domain"

// ManifestLoader reads and validates a package manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at the given path.
	Load(path string) (*domain.Manifest, error)
}

// LockReadOptions configures lock record parsing.
type LockReadOptions struct {
	// AllowTrustedFetch permits entries fetched directly from version
	// control without a pinned integrity proof. Off by default: verification
	// is required unless a dependency is explicitly marked trusted AND this
	// resolver-wide gate is open.
	AllowTrustedFetch bool
}

// LockReader parses a dependency lock record. Parsing is deterministic:
// identical content yields an identical record regardless of key order.
type LockReader interface {
	// Read parses the lock record at the given path.
	Read(path string, opts LockReadOptions) (*domain.LockRecord, error)
}
