package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// checkColumns must match the Scan order in ListSince.
const checkColumns = `id, profile_id, raw_text, verdict, follow_up_questions, warnings, created_at`

// CheckRepo implements domain.CheckRepository backed by PostgreSQL.
type CheckRepo struct {
	pool *pgxpool.Pool
}

// NewCheckRepo creates a CheckRepo from the shared connection pool.
func NewCheckRepo(pool *pgxpool.Pool) *CheckRepo {
	return &CheckRepo{pool: pool}
}

func (r *CheckRepo) Create(ctx context.Context, check *domain.Check) error {
	followUps := check.FollowUpQuestions
	if followUps == nil {
		followUps = []string{}
	}
	warnings := check.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO checks (id, profile_id, raw_text, verdict, follow_up_questions, warnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		check.ID, check.ProfileID, check.RawText, check.Verdict, followUps, warnings, check.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create check: %w", err)
	}
	return nil
}

func (r *CheckRepo) ListSince(ctx context.Context, profileID uuid.UUID, cutoff time.Time) ([]domain.Check, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+checkColumns+`
		FROM checks
		WHERE profile_id = $1 AND created_at >= $2
		ORDER BY created_at, id`,
		profileID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.Check
	for rows.Next() {
		var check domain.Check
		err := rows.Scan(
			&check.ID, &check.ProfileID, &check.RawText, &check.Verdict,
			&check.FollowUpQuestions, &check.Warnings, &check.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}
