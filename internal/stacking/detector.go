// Package stacking detects functional stacking: two or more distinct
// ingestibles from the same functional class logged within one check.
package stacking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

// DefaultWindowHours is the rolling window applied when the caller passes a
// non-positive window.
const DefaultWindowHours = 48

// matchedByRegistry records how items were grouped, for downstream audit.
const matchedByRegistry = "functional_registry"

// CheckStore is the subset of check persistence the detector reads.
type CheckStore interface {
	ListSince(ctx context.Context, profileID uuid.UUID, cutoff time.Time) ([]domain.Check, error)
}

// EventStore is the subset of event persistence the detector reads.
type EventStore interface {
	ListByCheckIDs(ctx context.Context, checkIDs []uuid.UUID) ([]domain.HealthEvent, error)
}

// ClassMatcher resolves ingestible names to functional classes.
type ClassMatcher interface {
	MatchFunctionalClasses(name string) []string
	ClassLabel(key string) string
}

// Detector finds stacking insights over a rolling window of checks. It is
// the only core component that performs external I/O: two sequential
// read-only queries per invocation, no writes, no retries. Callers needing
// bounded latency wrap Detect with their own context timeout.
type Detector struct {
	checks  CheckStore
	events  EventStore
	matcher ClassMatcher
	clock   clockwork.Clock
}

// NewDetector creates a detector over the given stores and knowledge matcher.
func NewDetector(checks CheckStore, events EventStore, matcher ClassMatcher, clock clockwork.Clock) *Detector {
	return &Detector{checks: checks, events: events, matcher: matcher, clock: clock}
}

// Detect returns one insight per (check, functional class) pair where the
// check contains two or more distinct ingestible names mapping to that
// class. Stacking is co-occurrence within one check: interacting items in
// different checks inside the window are intentionally not flagged. An empty
// window yields an empty slice, not an error; store failures propagate
// naming the failing query.
func (d *Detector) Detect(ctx context.Context, profileID uuid.UUID, windowHours int) ([]domain.StackingInsight, error) {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	cutoff := d.clock.Now().Add(-time.Duration(windowHours) * time.Hour)

	checks, err := d.checks.ListSince(ctx, profileID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	if len(checks) == 0 {
		return []domain.StackingInsight{}, nil
	}

	checkIDs := make([]uuid.UUID, len(checks))
	for i, check := range checks {
		checkIDs[i] = check.ID
	}

	events, err := d.events.ListByCheckIDs(ctx, checkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query health events: %w", err)
	}
	if len(events) == 0 {
		return []domain.StackingInsight{}, nil
	}

	eventsByCheck := make(map[uuid.UUID][]domain.HealthEvent, len(checks))
	for _, event := range events {
		eventsByCheck[event.CheckID] = append(eventsByCheck[event.CheckID], event)
	}

	insights := []domain.StackingInsight{}
	for _, check := range checks {
		insights = append(insights, d.detectInCheck(check.ID, eventsByCheck[check.ID])...)
	}
	return insights, nil
}

// detectInCheck groups one check's medication and supplement events by
// functional class. Meal events are excluded from stacking. A class needs
// two distinct names, not two events: the same drug logged twice is not a
// stack.
func (d *Detector) detectInCheck(checkID uuid.UUID, events []domain.HealthEvent) []domain.StackingInsight {
	var classOrder []string
	itemsByClass := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for i := range events {
		event := &events[i]
		if event.Type != domain.EventMedication && event.Type != domain.EventSupplement {
			continue
		}
		name := event.IngestibleName()
		if name == "" {
			continue
		}
		normalized := domain.NormalizeName(name)

		for _, class := range d.matcher.MatchFunctionalClasses(name) {
			if seen[class] == nil {
				seen[class] = make(map[string]bool)
				classOrder = append(classOrder, class)
			}
			if seen[class][normalized] {
				continue
			}
			seen[class][normalized] = true
			itemsByClass[class] = append(itemsByClass[class], normalized)
		}
	}

	var insights []domain.StackingInsight
	for _, class := range classOrder {
		items := itemsByClass[class]
		if len(items) < 2 {
			continue
		}
		label := d.matcher.ClassLabel(class)
		insights = append(insights, domain.StackingInsight{
			Type:  domain.InsightTypeFunctionalStacking,
			Label: fmt.Sprintf("Multiple %s in one check", label),
			Description: fmt.Sprintf("%s and %s both belong to %s and were logged together in the same check.",
				items[0], items[1], label),
			SupportingEvents: []uuid.UUID{checkID},
			Meta: domain.InsightMeta{
				ClassKey:  class,
				Items:     items,
				MatchedBy: matchedByRegistry,
			},
			PriorityHints: []string{"same_check", "class:" + class},
			WhyIncluded:   fmt.Sprintf("functional_stacking class=%s items=%d", class, len(items)),
		})
	}
	return insights
}
