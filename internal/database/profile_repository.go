package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// profileColumns must match the Scan order in scanProfile.
const profileColumns = `id, known_allergies, current_medications, created_at, updated_at`

// ProfileRepo implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepo creates a ProfileRepo from the shared connection pool.
func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
		&profile.ID, &profile.KnownAllergies, &profile.CurrentMedications,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	profile, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, profileID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by ID: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, profileID uuid.UUID, knownAllergies []string, currentMedications []domain.Medication) (*domain.Profile, error) {
	// NOT NULL columns reject pgx's NULL encoding of nil slices.
	if knownAllergies == nil {
		knownAllergies = []string{}
	}
	if currentMedications == nil {
		currentMedications = []domain.Medication{}
	}

	profile, err := scanProfile(r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, known_allergies, current_medications, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			known_allergies = EXCLUDED.known_allergies,
			current_medications = EXCLUDED.current_medications,
			updated_at = NOW()
		RETURNING `+profileColumns,
		profileID, knownAllergies, currentMedications))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}
