// Package manifest provides the package manifest loader.
package manifest

import (
	"os"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/plankbuild/plank/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest filename used when none is given.
const DefaultManifest = "plank.yaml"

// Loader implements ports.ManifestLoader for YAML manifests.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ManifestLoader = (*Loader)(nil)

// Load reads, schema-validates and decodes the manifest at the given path.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	return Parse(data)
}

// Parse decodes manifest content into the domain type.
func Parse(data []byte) (*domain.Manifest, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "reason", "invalid yaml")
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var dto manifestDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to decode manifest")
	}

	m := &domain.Manifest{
		Package:      dto.Package,
		Source:       dto.Source,
		Lockfile:     dto.Lockfile,
		Toolchain:    dto.Toolchain,
		Extensions:   dto.Extensions,
		Inputs:       dto.Inputs,
		Dependencies: dto.Dependencies,
		Tooling:      dto.Tooling,
		Metadata: domain.Metadata{
			Description: dto.Metadata.Description,
			Homepage:    dto.Metadata.Homepage,
			License:     dto.Metadata.License,
			Program:     dto.Metadata.Program,
		},
	}
	for _, ci := range dto.ConditionalInputs {
		m.ConditionalInputs = append(m.ConditionalInputs, domain.ConditionalInputs{
			When:   ci.When,
			Inputs: ci.Inputs,
		})
	}
	for _, a := range dto.Actions {
		m.Actions = append(m.Actions, domain.Action{Run: a.Run})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
