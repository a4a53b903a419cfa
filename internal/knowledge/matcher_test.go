package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	taxonomy, err := LoadAllergenTaxonomy("")
	require.NoError(t, err)
	registry, err := LoadFunctionalRegistry("")
	require.NoError(t, err)
	return NewMatcher(taxonomy, registry)
}

func TestMatchFunctionalClasses(t *testing.T) {
	m := newDefaultMatcher(t)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single class", "warfarin", []string{"anticoagulant"}},
		{"multiple classes sorted", "diphenhydramine", []string{"antihistamine", "sleep_aid"}},
		{"normalization", "  IBUPROFEN  ", []string{"nsaid"}},
		{"alias", "advil", []string{"nsaid"}},
		{"alias of multi-class member", "benadryl", []string{"antihistamine", "sleep_aid"}},
		{"no match", "turmeric", nil},
		{"empty input", "   ", nil},
		{"no substring matching", "ibuprofen 200mg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchFunctionalClasses(tt.in))
		})
	}
}

func TestMatchFunctionalClassesReturnsCopy(t *testing.T) {
	m := newDefaultMatcher(t)

	first := m.MatchFunctionalClasses("benadryl")
	first[0] = "mutated"
	assert.Equal(t, []string{"antihistamine", "sleep_aid"}, m.MatchFunctionalClasses("benadryl"))
}

func TestClassLabel(t *testing.T) {
	m := newDefaultMatcher(t)

	assert.Equal(t, "NSAIDs", m.ClassLabel("nsaid"))
	assert.Equal(t, "unknown_class", m.ClassLabel("unknown_class"))
}

func TestResolveTaxonomyNodes(t *testing.T) {
	m := newDefaultMatcher(t)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"parent key", "peanut", []string{"peanut"}},
		{"child term", "Peanut Butter", []string{"peanut"}},
		{"child of another parent", "shrimp", []string{"shellfish"}},
		{"cross-reactive related", "lupin", []string{"peanut"}},
		{"alias resolves to canonical", "lactose", []string{"dairy"}},
		{"no match", "quinoa", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ResolveTaxonomyNodes(tt.in))
		})
	}
}
