package extraction

import (
	"regexp"
	"strings"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

var (
	// carbCueRe detects that the raw text already talked about carbs: the
	// word "carb"/"carbs" or a "<number> g|gram|grams" quantity.
	carbCueRe = regexp.MustCompile(`(?i)\bcarbs?\b|\b\d+(?:\.\d+)?\s*(?:g|gram|grams)\b`)
	// carbQuestionRe identifies carb-related follow-up questions.
	carbQuestionRe = regexp.MustCompile(`(?i)carb|carbohydrate`)
)

// PostProcess applies the two fixed normalization rules to an extraction
// result in place. Both rules are deterministic and idempotent; running them
// twice changes nothing. A nil result or nil event list is a no-op.
//
// Rule A: a meal event with a non-blank meal description never needs
// clarification on its own — missing optional fields (e.g. carbs) must not
// trigger a clarification request.
//
// Rule B: when the raw text carried a carb cue and at least one meal event
// captured a carbs value, carb-related follow-up questions are dropped so
// the user is not asked again for data already captured.
func PostProcess(rawText string, result *domain.ExtractionResult) {
	if result == nil || result.Events == nil {
		return
	}

	carbsCaptured := false
	for _, event := range result.Events {
		if event == nil || event.Type != domain.EventMeal {
			continue
		}
		if strings.TrimSpace(event.StringField("meal")) != "" {
			event.NeedsClarification = false
		}
		if event.Fields != nil && event.Fields["carbs"] != nil {
			carbsCaptured = true
		}
	}

	if carbsCaptured && carbCueRe.MatchString(rawText) {
		kept := result.FollowUpQuestions[:0]
		for _, question := range result.FollowUpQuestions {
			if !carbQuestionRe.MatchString(question) {
				kept = append(kept, question)
			}
		}
		result.FollowUpQuestions = kept
	}
}
