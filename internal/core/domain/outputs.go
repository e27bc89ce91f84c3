package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// maxAliasHops bounds alias dereference chains. Any chain longer than this is
// treated as a cycle.
const maxAliasHops = 32

// OutputGraph maps output names to either a concrete build plan or an alias
// that dereferences, possibly transitively, to one. Alias chains are
// validated at assembly time; a dangling alias or a cycle is a fatal
// configuration error, never deferred to consumption time.
type OutputGraph struct {
	platform Platform
	plans    map[string]*BuildPlan
	aliases  map[string]string
	closures map[string]string // alias -> concrete name, precomputed
}

// AssembleOutputs builds the output graph for one platform from its concrete
// plans and a static alias table, validating every alias chain.
func AssembleOutputs(platform Platform, plans map[string]*BuildPlan, aliases map[string]string) (*OutputGraph, error) {
	g := &OutputGraph{
		platform: platform,
		plans:    make(map[string]*BuildPlan, len(plans)),
		aliases:  make(map[string]string, len(aliases)),
		closures: make(map[string]string, len(aliases)),
	}
	for name, plan := range plans {
		g.plans[name] = plan
	}
	for name, target := range aliases {
		g.aliases[name] = target
	}

	// Alias names sorted so validation failures are deterministic.
	names := make([]string, 0, len(g.aliases))
	for name := range g.aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		concrete, err := g.deref(name)
		if err != nil {
			return nil, err
		}
		g.closures[name] = concrete
	}
	return g, nil
}

// deref follows an alias chain iteratively until it reaches a concrete plan.
func (g *OutputGraph) deref(name string) (string, error) {
	chain := []string{name}
	seen := map[string]bool{name: true}
	current := name

	for hops := 0; hops < maxAliasHops; hops++ {
		target, isAlias := g.aliases[current]
		if !isAlias {
			if _, concrete := g.plans[current]; concrete {
				return current, nil
			}
			err := zerr.With(zerr.Wrap(ErrDanglingAlias, "alias has no concrete target"), "alias", name)
			err = zerr.With(err, "chain", strings.Join(chain, " -> "))
			return "", zerr.With(err, "platform", string(g.platform))
		}
		chain = append(chain, target)
		if seen[target] {
			err := zerr.With(zerr.Wrap(ErrAliasCycle, "alias chain revisits a name"), "alias", name)
			err = zerr.With(err, "chain", strings.Join(chain, " -> "))
			return "", zerr.With(err, "platform", string(g.platform))
		}
		seen[target] = true
		current = target
	}

	err := zerr.With(zerr.Wrap(ErrAliasCycle, "alias chain exceeds hop bound"), "alias", name)
	err = zerr.With(err, "chain", strings.Join(chain, " -> "))
	return "", zerr.With(err, "platform", string(g.platform))
}

// Platform returns the platform this graph was assembled for.
func (g *OutputGraph) Platform() Platform {
	return g.platform
}

// Resolve dereferences an output name (concrete or alias) to its build plan.
func (g *OutputGraph) Resolve(name string) (*BuildPlan, error) {
	if plan, ok := g.plans[name]; ok {
		return plan, nil
	}
	if concrete, ok := g.closures[name]; ok {
		return g.plans[concrete], nil
	}
	err := zerr.With(zerr.Wrap(ErrUnknownOutput, "name is neither concrete nor an alias"), "output", name)
	return nil, zerr.With(err, "platform", string(g.platform))
}

// Outputs returns the concrete output names in sorted order.
func (g *OutputGraph) Outputs() []string {
	names := make([]string, 0, len(g.plans))
	for name := range g.plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AliasClosure returns the concrete output name an alias resolves to.
func (g *OutputGraph) AliasClosure(alias string) (string, bool) {
	concrete, ok := g.closures[alias]
	return concrete, ok
}

// DefaultAliases returns the static alias table for a package: "default"
// resolves to the package's canonical name.
func DefaultAliases(pkg string) map[string]string {
	return map[string]string{"default": pkg}
}
