package extraction

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

const keywordProvenance = "keyword-extractor"

var (
	mealRe       = regexp.MustCompile(`(?i)\b(?:ate|had|eating)\s+(?:an?\s+|some\s+|the\s+)?([^,.;]+)`)
	medicationRe = regexp.MustCompile(`(?i)\btook\s+(?:an?\s+|some\s+|my\s+)?(?:\d+\s*mg\s+of\s+)?([a-z][a-z\-]*)(?:\s+([a-z][a-z\-]*))?`)
	carbsRe      = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:g|gram|grams)\b`)
)

// supplementWords distinguishes supplements from medications in "took ..."
// phrases. The keyword extractor is a deterministic reference implementation;
// it does not consult the knowledge base.
var supplementWords = map[string]bool{
	"melatonin":           true,
	"valerian":            true,
	"magnesium":           true,
	"magnesium glycinate": true,
	"fish oil":            true,
	"cod liver oil":       true,
	"vitamin":             true,
	"vitamin d":           true,
	"vitamin d3":          true,
	"vitamin c":           true,
	"caffeine":            true,
	"zinc":                true,
	"iron":                true,
}

// KeywordExtractor is a deterministic, rules-only implementation of
// domain.Extractor. It exists so the service runs end-to-end without a
// model-driven extractor; production deployments inject their own.
type KeywordExtractor struct{}

// NewKeywordExtractor creates the reference extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// Extract derives meal, medication, and supplement events from raw text. It
// never fails: text with no recognizable cues yields an empty event list.
func (x *KeywordExtractor) Extract(_ context.Context, text string) (*domain.ExtractionResult, error) {
	result := &domain.ExtractionResult{Events: []*domain.HealthEvent{}}

	if m := mealRe.FindStringSubmatch(text); m != nil {
		meal := strings.TrimSpace(m[1])
		fields := map[string]any{"meal": meal}
		event := &domain.HealthEvent{
			Type:       domain.EventMeal,
			Fields:     fields,
			Confidence: 0.6,
			Provenance: keywordProvenance,
		}
		if c := carbsRe.FindStringSubmatch(text); c != nil {
			if grams, err := strconv.ParseFloat(c[1], 64); err == nil {
				fields["carbs"] = grams
			}
		} else {
			event.NeedsClarification = true
			result.FollowUpQuestions = append(result.FollowUpQuestions,
				"Roughly how many grams of carbs did the meal contain?")
		}
		result.Events = append(result.Events, event)
	}

	for _, m := range medicationRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		phrase := strings.TrimSpace(name + " " + strings.ToLower(m[2]))
		if name == "" {
			continue
		}
		event := &domain.HealthEvent{
			Confidence: 0.6,
			Provenance: keywordProvenance,
		}
		switch {
		case supplementWords[phrase]:
			event.Type = domain.EventSupplement
			event.Fields = map[string]any{"supplement": phrase}
		case supplementWords[name]:
			event.Type = domain.EventSupplement
			event.Fields = map[string]any{"supplement": name}
		default:
			event.Type = domain.EventMedication
			event.Fields = map[string]any{"medication": name}
		}
		result.Events = append(result.Events, event)
	}

	return result, nil
}
