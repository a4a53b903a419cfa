package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Interfaces ---

// ProfileRepository abstracts profile persistence.
type ProfileRepository interface {
	GetByID(ctx context.Context, profileID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, profileID uuid.UUID, knownAllergies []string, currentMedications []Medication) (*Profile, error)
}

// CheckRepository abstracts check persistence.
type CheckRepository interface {
	Create(ctx context.Context, check *Check) error
	// ListSince returns all checks for the profile created at or after cutoff,
	// ordered ascending by creation time.
	ListSince(ctx context.Context, profileID uuid.UUID, cutoff time.Time) ([]Check, error)
}

// EventRepository abstracts health-event persistence.
type EventRepository interface {
	CreateBatch(ctx context.Context, events []*HealthEvent) error
	// ListByCheckIDs returns all events belonging to the given checks, ordered
	// ascending by creation time.
	ListByCheckIDs(ctx context.Context, checkIDs []uuid.UUID) ([]HealthEvent, error)
}

// SubmissionLimiter gates check submissions per profile. Implementations must
// fail open: risk scoring never depends on the limiter backend being up.
type SubmissionLimiter interface {
	Allow(ctx context.Context, profileID uuid.UUID) (bool, error)
}

// AppService is the application layer contract — handlers route all
// operations through here.
type AppService interface {
	SubmitCheck(ctx context.Context, profileID uuid.UUID, rawText string) (*Check, error)
	Insights(ctx context.Context, profileID uuid.UUID, windowHours int) ([]StackingInsight, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*Profile, error)
	SaveProfile(ctx context.Context, profileID uuid.UUID, knownAllergies []string, currentMedications []Medication) (*Profile, error)
}
