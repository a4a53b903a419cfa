package domain

import "context"

// ExtractionResult is the raw output of the extraction collaborator before
// post-processing. The post-processor mutates it in place; everything else
// treats it as read-only.
type ExtractionResult struct {
	Events            []*HealthEvent `json:"events"`
	FollowUpQuestions []string       `json:"followUpQuestions,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
}

// Extractor turns raw input text into structured health events. The
// production implementation may be model-driven; the core only consumes its
// output shape.
type Extractor interface {
	Extract(ctx context.Context, text string) (*ExtractionResult, error)
}
