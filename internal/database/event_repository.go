package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// eventColumns must match the Scan order in ListByCheckIDs.
const eventColumns = `id, check_id, type, fields, confidence, provenance, needs_clarification, created_at`

// EventRepo implements domain.EventRepository backed by PostgreSQL.
type EventRepo struct {
	pool *pgxpool.Pool
}

// NewEventRepo creates an EventRepo from the shared connection pool.
func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) CreateBatch(ctx context.Context, events []*domain.HealthEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		fields := event.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		batch.Queue(`
			INSERT INTO health_events (id, check_id, type, fields, confidence, provenance, needs_clarification, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			event.ID, event.CheckID, event.Type, fields,
			event.Confidence, event.Provenance, event.NeedsClarification, event.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create health events: %w", err)
		}
	}
	return nil
}

func (r *EventRepo) ListByCheckIDs(ctx context.Context, checkIDs []uuid.UUID) ([]domain.HealthEvent, error) {
	if len(checkIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM health_events
		WHERE check_id = ANY($1)
		ORDER BY created_at, id`,
		checkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list health events: %w", err)
	}
	defer rows.Close()

	var events []domain.HealthEvent
	for rows.Next() {
		var event domain.HealthEvent
		err := rows.Scan(
			&event.ID, &event.CheckID, &event.Type, &event.Fields,
			&event.Confidence, &event.Provenance, &event.NeedsClarification, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list health events: %w", err)
	}
	return events, nil
}
