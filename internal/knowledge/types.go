package knowledge

// TaxonomyNode is one parent category in the allergen hierarchy.
type TaxonomyNode struct {
	Label    string   `json:"label"`
	Children []string `json:"children"`
}

// CrossReactiveGroup links a taxonomy parent to related terms that share
// cross-reactivity risk.
type CrossReactiveGroup struct {
	Source       string   `json:"source"`
	Related      []string `json:"related"`
	RiskModifier float64  `json:"riskModifier"`
}

// Taxonomy is the allergen taxonomy: parent categories, their child terms,
// per-category severities, cross-reactive groups, and name aliases.
type Taxonomy struct {
	Version       string                  `json:"version"`
	Nodes         map[string]TaxonomyNode `json:"taxonomy"`
	Severity      map[string]int          `json:"severity"`
	CrossReactive []CrossReactiveGroup    `json:"crossReactive"`
	// Aliases maps a canonical ID to its sorted alias strings.
	Aliases map[string][]string `json:"aliases"`
}

// fallbackSeverity applies to any taxonomy key absent from the severity table.
const fallbackSeverity = 50

// SeverityFor returns the severity for a taxonomy key, falling back to 50
// for keys absent from the table.
func (t *Taxonomy) SeverityFor(key string) int {
	if s, ok := t.Severity[key]; ok {
		return s
	}
	return fallbackSeverity
}

// ClassEntry is one functional class: a label and its member names.
type ClassEntry struct {
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// Registry is the functional-class registry. The whole registry carries one
// version, not per-entry.
type Registry struct {
	Version string
	Classes map[string]ClassEntry
}

// AdviceEntry is one advice-registry entry. Target must resolve to a
// taxonomy parent key, a child term, a cross-reactive related term, or the
// sentinel "general" — enforced by ValidateNoOrphanAdvice.
type AdviceEntry struct {
	Target string `json:"target"`
	Advice string `json:"advice"`
}

// AdviceRegistry is the static advice knowledge base.
type AdviceRegistry struct {
	Version string        `json:"version"`
	Entries []AdviceEntry `json:"entries"`
}

// AdviceTargetGeneral is the sentinel target for profile-independent advice.
const AdviceTargetGeneral = "general"
