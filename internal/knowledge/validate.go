package knowledge

import (
	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// ValidateNoOrphanAdvice checks that every advice entry targets something
// that exists in the taxonomy: the sentinel "general", a parent key, a child
// term (case-insensitive across all parents), or a cross-reactive related
// term. It returns the orphan target names alphabetically sorted; an empty
// result means the knowledge base is fully consistent. This is a
// build-time/CI-time invariant check, not a runtime path.
func ValidateNoOrphanAdvice(taxonomy *Taxonomy, advice *AdviceRegistry) []string {
	valid := make(map[string]bool)
	valid[AdviceTargetGeneral] = true
	for key, node := range taxonomy.Nodes {
		valid[domain.NormalizeName(key)] = true
		for _, child := range node.Children {
			valid[domain.NormalizeName(child)] = true
		}
	}
	for _, group := range taxonomy.CrossReactive {
		for _, related := range group.Related {
			valid[domain.NormalizeName(related)] = true
		}
	}

	var orphans []string
	for _, entry := range advice.Entries {
		target := domain.NormalizeName(entry.Target)
		if !valid[target] {
			orphans = append(orphans, target)
		}
	}
	if len(orphans) == 0 {
		return nil
	}
	return sortedUnique(orphans)
}
