package resolver

import (
	"sort"

	"github.com/plankbuild/plank/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve produces the build plan for one platform. It is a pure function of
// (manifest, lock record, platform context): identical inputs always yield a
// byte-identical plan.
func Resolve(m *domain.Manifest, lock *domain.LockRecord, pctx *domain.PlatformContext) (*domain.BuildPlan, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	inputs, err := mergeInputs(m, pctx)
	if err != nil {
		return nil, err
	}

	deps, err := resolveDependencies(m, lock, inputs, pctx.Platform())
	if err != nil {
		return nil, err
	}

	toolchain, err := resolveToolchain(m, pctx)
	if err != nil {
		return nil, err
	}

	actions, artifacts, err := assembleActions(m, pctx)
	if err != nil {
		return nil, err
	}

	return &domain.BuildPlan{
		Package:      m.Package,
		Platform:     pctx.Platform(),
		Toolchain:    toolchain,
		Inputs:       inputs,
		Dependencies: deps,
		Actions:      actions,
		Artifacts:    artifacts,
		Metadata:     m.Metadata,
		Provenance:   buildProvenance(deps),
	}, nil
}

// mergeInputs evaluates conditional input predicates against the context and
// merges unconditional and included conditional inputs into one ordered list,
// deduplicated by name with the first occurrence winning.
func mergeInputs(m *domain.Manifest, pctx *domain.PlatformContext) ([]string, error) {
	merged := make([]string, 0, len(m.Inputs))
	seen := make(map[string]bool, len(m.Inputs))

	appendInput := func(name string) {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}

	for _, name := range m.Inputs {
		appendInput(name)
	}
	for _, cond := range m.ConditionalInputs {
		active, err := pctx.Predicate(cond.When)
		if err != nil {
			return nil, err
		}
		if !active {
			continue
		}
		for _, name := range cond.Inputs {
			appendInput(name)
		}
	}
	return merged, nil
}

// resolveDependencies pins the merged input list and the manifest's source
// graph roots against the lock record, walking the transitive closure the
// lock record describes. Any name absent from the record fails resolution.
func resolveDependencies(
	m *domain.Manifest,
	lock *domain.LockRecord,
	inputs []string,
	platform domain.Platform,
) ([]domain.PinnedDependency, error) {
	queue := make([]string, 0, len(inputs)+len(m.Dependencies))
	queue = append(queue, inputs...)
	queue = append(queue, m.Dependencies...)

	visited := make(map[string]bool, len(queue))
	pinned := make([]domain.PinnedDependency, 0, len(queue))

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		dep, ok := lock.Get(name)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrUnpinnedDependency, "dependency missing from lock record"), "dependency", name)
			err = zerr.With(err, "package", m.Package)
			return nil, zerr.With(err, "platform", string(platform))
		}
		pinned = append(pinned, dep)
		queue = append(queue, dep.Requires...)
	}

	// Sorted by name so the plan's canonical encoding does not depend on
	// traversal order.
	sort.Slice(pinned, func(i, j int) bool { return pinned[i].Name < pinned[j].Name })
	return pinned, nil
}

// resolveToolchain looks the manifest's toolchain up in the composed
// registry. Lookups must be total for any name the manifest references.
func resolveToolchain(m *domain.Manifest, pctx *domain.PlatformContext) (domain.RegistryEntry, error) {
	if m.Toolchain == "" {
		return domain.RegistryEntry{}, nil
	}
	entry, err := pctx.Registry().Lookup(m.Toolchain)
	if err != nil {
		return domain.RegistryEntry{}, zerr.With(err, "platform", string(pctx.Platform()))
	}
	return entry, nil
}

// assembleActions carries the manifest's actions verbatim and interleaves the
// auxiliary actions contributed by the manifest's tooling inputs, in tooling
// declaration order.
func assembleActions(m *domain.Manifest, pctx *domain.PlatformContext) ([]domain.Action, []domain.ArtifactDescriptor, error) {
	actions := make([]domain.Action, 0, len(m.Actions))
	actions = append(actions, m.Actions...)

	var artifacts []domain.ArtifactDescriptor
	if m.Metadata.Program != "" {
		artifacts = append(artifacts, domain.ArtifactDescriptor{
			Name: m.Metadata.Program,
			Kind: "binary",
			Path: "bin/" + m.Metadata.Program,
		})
	}

	for _, name := range m.Tooling {
		entry, err := pctx.Registry().Lookup(name)
		if err != nil {
			return nil, nil, zerr.With(err, "platform", string(pctx.Platform()))
		}
		actions = append(actions, entry.AuxActions...)
		artifacts = append(artifacts, entry.AuxArtifacts...)
	}

	return actions, artifacts, nil
}

// buildProvenance splits the pinned set by fetch mode, each side sorted.
func buildProvenance(deps []domain.PinnedDependency) domain.Provenance {
	var p domain.Provenance
	for _, dep := range deps {
		if dep.Mode() == domain.FetchTrusted {
			p.Trusted = append(p.Trusted, dep.Name)
		} else {
			p.Verified = append(p.Verified, dep.Name)
		}
	}
	sort.Strings(p.Verified)
	sort.Strings(p.Trusted)
	return p
}
