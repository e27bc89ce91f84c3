// Package lockfile implements the lock record reader.
package lockfile

import (
	"os"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultLockfile is the lock record filename used when the manifest does
// not name one.
const DefaultLockfile = "plank.lock.yaml"

// Reader implements ports.LockReader for YAML lock records.
type Reader struct{}

// NewReader creates a lock record reader.
func NewReader() *Reader {
	return &Reader{}
}

var _ ports.LockReader = (*Reader)(nil)

type entryDTO struct {
	Version   string   `yaml:"version"`
	Source    string   `yaml:"source"`
	Integrity string   `yaml:"integrity"`
	Trusted   bool     `yaml:"trusted"`
	Requires  []string `yaml:"requires"`
}

// Read parses the lock record at the given path. Parsing is a pure function
// of the file content: identical bytes yield an identical record, whatever
// the key order in the source.
func (r *Reader) Read(path string, opts ports.LockReadOptions) (*domain.LockRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock record"), "path", path)
	}
	return Parse(data, opts)
}

// Parse decodes lock record content. The YAML is walked as a node tree so
// duplicate dependency names are detected rather than silently collapsed.
func Parse(data []byte, opts ports.LockReadOptions) (*domain.LockRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, zerr.With(ErrParse(err), "reason", "invalid yaml")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock record structure check failed"), "reason", "empty document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock record structure check failed"), "reason", "top level is not a mapping")
	}

	version := 1
	var depsNode *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "version":
			if err := value.Decode(&version); err != nil {
				return nil, zerr.With(ErrParse(err), "reason", "invalid version")
			}
		case "dependencies":
			depsNode = value
		}
	}

	record := domain.NewLockRecord(version)
	if depsNode == nil {
		return record, nil
	}
	if depsNode.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock record structure check failed"), "reason", "dependencies is not a mapping")
	}

	for i := 0; i+1 < len(depsNode.Content); i += 2 {
		nameNode, valueNode := depsNode.Content[i], depsNode.Content[i+1]
		name := nameNode.Value

		var dto entryDTO
		if err := valueNode.Decode(&dto); err != nil {
			return nil, zerr.With(ErrParse(err), "dependency", name)
		}

		dep := domain.PinnedDependency{
			Name:      name,
			Version:   dto.Version,
			Source:    dto.Source,
			Integrity: dto.Integrity,
			Trusted:   dto.Trusted,
			Requires:  dto.Requires,
		}
		if err := validateEntry(dep, opts); err != nil {
			return nil, err
		}
		// Add catches duplicate names: the node walk preserves every key,
		// including repeats that a map decode would collapse.
		if err := record.Add(dep); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// ErrParse wraps a YAML decoding error as a malformed lock record.
func ErrParse(err error) error {
	return zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock record decode failed"), "cause", err.Error())
}

func validateEntry(dep domain.PinnedDependency, opts ports.LockReadOptions) error {
	switch {
	case dep.Trusted && dep.Integrity != "":
		err := zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock entry rejected"), "dependency", dep.Name)
		return zerr.With(err, "reason", "entry is both trusted and integrity-pinned")
	case dep.Trusted && !opts.AllowTrustedFetch:
		err := zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock entry rejected"), "dependency", dep.Name)
		return zerr.With(err, "reason", "trusted fetch entries are not permitted")
	case !dep.Trusted && dep.Integrity == "":
		err := zerr.With(zerr.Wrap(domain.ErrMalformedLockRecord, "lock entry rejected"), "dependency", dep.Name)
		return zerr.With(err, "reason", "missing integrity proof")
	}
	return nil
}
