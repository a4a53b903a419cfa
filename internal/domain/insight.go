package domain

import "github.com/google/uuid"

// InsightTypeFunctionalStacking marks insights emitted by the stacking detector.
const InsightTypeFunctionalStacking = "functional_stacking"

// InsightMeta carries the machine-readable payload of a stacking insight.
type InsightMeta struct {
	ClassKey  string   `json:"classKey"`
	Items     []string `json:"items"`
	MatchedBy string   `json:"matchedBy"`
}

// StackingInsight is emitted when two or more distinct ingestibles in the
// same check map to the same functional class. Score is filled in by a
// downstream scoring collaborator, never here.
type StackingInsight struct {
	Type             string      `json:"type"`
	Label            string      `json:"label"`
	Description      string      `json:"description"`
	SupportingEvents []uuid.UUID `json:"supportingEvents"`
	Meta             InsightMeta `json:"meta"`
	PriorityHints    []string    `json:"priorityHints,omitempty"`
	WhyIncluded      string      `json:"whyIncluded"`
	Score            *float64    `json:"score,omitempty"`
}
