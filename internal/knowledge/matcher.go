package knowledge

import (
	"sort"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// Matcher resolves a free-text ingestible name to functional classes and
// taxonomy nodes. Matching is exact after normalization (lowercase, trim),
// extended by the taxonomy's alias table; no fuzzy or substring matching
// happens here. Built once per knowledge load and safe for concurrent use.
type Matcher struct {
	taxonomy *Taxonomy
	registry *Registry

	// classesByName maps a normalized member or alias to the sorted set of
	// class keys it belongs to.
	classesByName map[string][]string
	// aliasCanonical maps a normalized alias back to its canonical ID.
	aliasCanonical map[string]string
}

// NewMatcher builds the lookup tables from an immutable knowledge snapshot.
func NewMatcher(taxonomy *Taxonomy, registry *Registry) *Matcher {
	m := &Matcher{
		taxonomy:       taxonomy,
		registry:       registry,
		classesByName:  make(map[string][]string),
		aliasCanonical: make(map[string]string),
	}

	for key, entry := range registry.Classes {
		for _, member := range entry.Members {
			name := domain.NormalizeName(member)
			if name == "" {
				continue
			}
			m.classesByName[name] = append(m.classesByName[name], key)
		}
	}

	for canonical, aliases := range taxonomy.Aliases {
		canonicalName := domain.NormalizeName(canonical)
		for _, alias := range aliases {
			aliasName := domain.NormalizeName(alias)
			if aliasName == "" {
				continue
			}
			m.aliasCanonical[aliasName] = canonicalName
			// An alias matches every class its canonical name matches.
			if classes, ok := m.classesByName[canonicalName]; ok {
				m.classesByName[aliasName] = append(m.classesByName[aliasName], classes...)
			}
		}
	}

	for name, classes := range m.classesByName {
		m.classesByName[name] = sortedUnique(classes)
	}

	return m
}

// MatchFunctionalClasses returns every functional class the name belongs to,
// sorted for determinism. A name may match multiple classes; callers must
// treat membership as a set. Returns nil when nothing matches.
func (m *Matcher) MatchFunctionalClasses(name string) []string {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil
	}
	classes := m.classesByName[normalized]
	if len(classes) == 0 {
		return nil
	}
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}

// ClassLabel returns the human label for a class key, falling back to the
// key itself when the registry carries no label.
func (m *Matcher) ClassLabel(key string) string {
	if entry, ok := m.registry.Classes[key]; ok && entry.Label != "" {
		return entry.Label
	}
	return key
}

// ResolveTaxonomyNodes returns the taxonomy parent keys the name resolves
// to: a parent key match, a child-term match (case-insensitive across all
// parents), a cross-reactive related term, or any of those via an alias.
// Sorted for determinism; nil when nothing matches.
func (m *Matcher) ResolveTaxonomyNodes(name string) []string {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil
	}

	nodes := m.resolveDirect(normalized)
	if canonical, ok := m.aliasCanonical[normalized]; ok {
		nodes = append(nodes, m.resolveDirect(canonical)...)
	}
	if len(nodes) == 0 {
		return nil
	}
	return sortedUnique(nodes)
}

func (m *Matcher) resolveDirect(name string) []string {
	var nodes []string
	for key, node := range m.taxonomy.Nodes {
		if name == key {
			nodes = append(nodes, key)
			continue
		}
		for _, child := range node.Children {
			if name == domain.NormalizeName(child) {
				nodes = append(nodes, key)
				break
			}
		}
	}
	for _, group := range m.taxonomy.CrossReactive {
		for _, related := range group.Related {
			if name == domain.NormalizeName(related) {
				nodes = append(nodes, group.Source)
				break
			}
		}
	}
	return nodes
}

func sortedUnique(values []string) []string {
	sort.Strings(values)
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
