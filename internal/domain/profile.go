package domain

import (
	"time"

	"github.com/google/uuid"
)

// Medication is one entry in a profile's current medication list.
type Medication struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
}

// Profile is a read-only snapshot of a user's health profile. The engine and
// detector receive one snapshot per invocation and never cache it across calls.
type Profile struct {
	ID                 uuid.UUID    `json:"id"`
	KnownAllergies     []string     `json:"knownAllergies"`
	CurrentMedications []Medication `json:"currentMedications"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}
