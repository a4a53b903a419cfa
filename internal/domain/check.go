package domain

import (
	"time"

	"github.com/google/uuid"
)

// Check is one user-submitted extraction occurrence: the raw text, the events
// derived from it, the verdict, and any follow-up questions or warnings
// produced along the way.
type Check struct {
	ID                uuid.UUID `json:"id"`
	ProfileID         uuid.UUID `json:"profileId"`
	RawText           string    `json:"rawText"`
	Verdict           Verdict   `json:"verdict"`
	FollowUpQuestions []string  `json:"followUpQuestions,omitempty"`
	Warnings          []string  `json:"warnings,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
