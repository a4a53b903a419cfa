package risk

import (
	"fmt"
	"strings"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// Engine is the risk rule engine. It is a pure, synchronous computation with
// no shared mutable state; one instance is safe for concurrent use.
type Engine struct{}

// NewEngine creates the rule engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CheckRisk evaluates events in input order against the profile and returns
// a single severity-ranked verdict. Malformed or absent optional fields are
// treated as "no match", never as errors. All matches are retained; the
// reported level is the maximum severity observed across the event list.
func (e *Engine) CheckRisk(profile *domain.Profile, events []*domain.HealthEvent) domain.Verdict {
	if profile == nil {
		profile = &domain.Profile{}
	}

	highest := domain.RiskNone
	var matched []domain.RuleMatch
	var reasons []string

	for _, event := range events {
		if event == nil {
			continue
		}
		switch event.Type {
		case domain.EventMeal:
			if match, reason, ok := e.checkAllergy(profile, event); ok {
				matched = append(matched, match)
				reasons = append(reasons, reason)
				highest = highest.Escalate(domain.RiskHigh)
			}
		case domain.EventMedication:
			if match, reason, ok := e.checkInteraction(profile, event); ok {
				matched = append(matched, match)
				reasons = append(reasons, reason)
				// High is never downgraded by a later medium match.
				highest = highest.Escalate(domain.RiskMedium)
			}
		}
	}

	if len(matched) == 0 {
		return domain.Verdict{RiskLevel: domain.RiskNone, Reasoning: domain.NoRiskReasoning}
	}

	return domain.Verdict{
		RiskLevel: highest,
		Reasoning: strings.Join(reasons, "; ") + ".",
		Matched:   matched,
	}
}

// checkAllergy implements Rule A (severity HIGH): the normalized meal text
// contains a profile allergy term as a substring, or contains the term with
// a single trailing "s" stripped ("peanuts" matches "peanut butter"). The
// first matching allergy wins for the event.
func (e *Engine) checkAllergy(profile *domain.Profile, event *domain.HealthEvent) (domain.RuleMatch, string, bool) {
	meal := event.StringField("meal")
	if meal == "" {
		return domain.RuleMatch{}, "", false
	}
	mealText := domain.NormalizeName(meal)

	for _, allergy := range profile.KnownAllergies {
		term := domain.NormalizeName(allergy)
		if term == "" {
			continue
		}
		singular := strings.TrimSuffix(term, "s")
		if strings.Contains(mealText, term) || (singular != term && strings.Contains(mealText, singular)) {
			match := domain.RuleMatch{
				Rule:    domain.RuleAllergy,
				Details: map[string]string{"meal": meal, "allergen": allergy},
			}
			reason := fmt.Sprintf("Meal %q contains known allergen %q", meal, allergy)
			return match, reason, true
		}
	}
	return domain.RuleMatch{}, "", false
}

// checkInteraction implements Rule B (severity MEDIUM): the extracted
// medication has entries in the fixed interaction map and the profile's
// current medications contain one of them. The first current medication
// present in the entry's set wins.
func (e *Engine) checkInteraction(profile *domain.Profile, event *domain.HealthEvent) (domain.RuleMatch, string, bool) {
	extracted := event.StringField("medication")
	if extracted == "" {
		return domain.RuleMatch{}, "", false
	}

	partners, ok := interactionMap[domain.NormalizeName(extracted)]
	if !ok {
		return domain.RuleMatch{}, "", false
	}

	for _, current := range profile.CurrentMedications {
		if partners[domain.NormalizeName(current.Name)] {
			match := domain.RuleMatch{
				Rule:    domain.RuleMedicationInteraction,
				Details: map[string]string{"extracted": extracted, "conflictsWith": current.Name},
			}
			reason := fmt.Sprintf("%s may interact with current medication %s", extracted, current.Name)
			return match, reason, true
		}
	}
	return domain.RuleMatch{}, "", false
}
