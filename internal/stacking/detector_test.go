package stacking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/knowledge"
)

// --- Mocks ---

type mockCheckStore struct {
	checks     []domain.Check
	err        error
	lastCutoff time.Time
	calls      int
}

func (m *mockCheckStore) ListSince(_ context.Context, _ uuid.UUID, cutoff time.Time) ([]domain.Check, error) {
	m.calls++
	m.lastCutoff = cutoff
	return m.checks, m.err
}

type mockEventStore struct {
	events []domain.HealthEvent
	err    error
	calls  int
}

func (m *mockEventStore) ListByCheckIDs(_ context.Context, _ []uuid.UUID) ([]domain.HealthEvent, error) {
	m.calls++
	return m.events, m.err
}

// --- Helpers ---

func newTestMatcher(t *testing.T) *knowledge.Matcher {
	t.Helper()
	taxonomy, err := knowledge.LoadAllergenTaxonomy("")
	require.NoError(t, err)
	registry, err := knowledge.LoadFunctionalRegistry("")
	require.NoError(t, err)
	return knowledge.NewMatcher(taxonomy, registry)
}

func newTestDetector(t *testing.T, checks *mockCheckStore, events *mockEventStore) (*Detector, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	return NewDetector(checks, events, newTestMatcher(t), clock), clock
}

func medEvent(checkID uuid.UUID, name string) domain.HealthEvent {
	return domain.HealthEvent{
		ID:      uuid.New(),
		CheckID: checkID,
		Type:    domain.EventMedication,
		Fields:  map[string]any{"medication": name},
	}
}

func suppEvent(checkID uuid.UUID, name string) domain.HealthEvent {
	return domain.HealthEvent{
		ID:      uuid.New(),
		CheckID: checkID,
		Type:    domain.EventSupplement,
		Fields:  map[string]any{"supplement": name},
	}
}

// --- Tests ---

func TestDetectWindowCutoff(t *testing.T) {
	checks := &mockCheckStore{}
	events := &mockEventStore{}
	detector, clock := newTestDetector(t, checks, events)

	_, err := detector.Detect(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(-DefaultWindowHours*time.Hour), checks.lastCutoff)

	_, err = detector.Detect(context.Background(), uuid.New(), 6)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(-6*time.Hour), checks.lastCutoff)
}

func TestDetectNoChecksInWindow(t *testing.T) {
	checks := &mockCheckStore{}
	events := &mockEventStore{}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
	assert.NotNil(t, insights)
	// No point querying events when there are no checks.
	assert.Equal(t, 0, events.calls)
}

func TestDetectNoEvents(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
	assert.Equal(t, 1, events.calls)
}

func TestDetectNSAIDStacking(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(checkID, "ibuprofen"),
		suppEvent(checkID, "naproxen"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)

	require.Len(t, insights, 1)
	insight := insights[0]
	assert.Equal(t, domain.InsightTypeFunctionalStacking, insight.Type)
	assert.Equal(t, "nsaid", insight.Meta.ClassKey)
	assert.Equal(t, []string{"ibuprofen", "naproxen"}, insight.Meta.Items)
	assert.Equal(t, "functional_registry", insight.Meta.MatchedBy)
	assert.Equal(t, []uuid.UUID{checkID}, insight.SupportingEvents)
	assert.Contains(t, insight.Label, "NSAIDs")
	assert.Contains(t, insight.Description, "ibuprofen")
	assert.Contains(t, insight.Description, "naproxen")
	assert.Equal(t, "functional_stacking class=nsaid items=2", insight.WhyIncluded)
	assert.Nil(t, insight.Score)
}

func TestDetectSingleItemNeverStacks(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(checkID, "ibuprofen"),
		medEvent(checkID, "sertraline"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDetectDuplicateNameIsNotStacking(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(checkID, "ibuprofen"),
		medEvent(checkID, "Ibuprofen "), // same drug, different casing
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDetectMealEventsExcluded(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		{CheckID: checkID, Type: domain.EventMeal, Fields: map[string]any{"meal": "ibuprofen"}},
		medEvent(checkID, "naproxen"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDetectMultipleClassesInOneCheck(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(checkID, "benadryl"),
		suppEvent(checkID, "melatonin"),
		medEvent(checkID, "loratadine"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)

	// benadryl+loratadine stack as antihistamines, benadryl+melatonin as
	// sleep aids: one insight per qualifying class.
	require.Len(t, insights, 2)
	assert.Equal(t, "antihistamine", insights[0].Meta.ClassKey)
	assert.Equal(t, []string{"benadryl", "loratadine"}, insights[0].Meta.Items)
	assert.Equal(t, "sleep_aid", insights[1].Meta.ClassKey)
	assert.Equal(t, []string{"benadryl", "melatonin"}, insights[1].Meta.Items)
}

func TestDetectNoStackingAcrossChecks(t *testing.T) {
	firstCheck := uuid.New()
	secondCheck := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: firstCheck}, {ID: secondCheck}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(firstCheck, "ibuprofen"),
		medEvent(secondCheck, "naproxen"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	insights, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDetectQueryFailures(t *testing.T) {
	storeErr := errors.New("connection refused")

	t.Run("checks query", func(t *testing.T) {
		checks := &mockCheckStore{err: storeErr}
		detector, _ := newTestDetector(t, checks, &mockEventStore{})

		_, err := detector.Detect(context.Background(), uuid.New(), 48)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query checks")
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("events query", func(t *testing.T) {
		checks := &mockCheckStore{checks: []domain.Check{{ID: uuid.New()}}}
		events := &mockEventStore{err: storeErr}
		detector, _ := newTestDetector(t, checks, events)

		_, err := detector.Detect(context.Background(), uuid.New(), 48)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query health events")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestDetectDeterminism(t *testing.T) {
	checkID := uuid.New()
	checks := &mockCheckStore{checks: []domain.Check{{ID: checkID}}}
	events := &mockEventStore{events: []domain.HealthEvent{
		medEvent(checkID, "ibuprofen"),
		suppEvent(checkID, "naproxen"),
		medEvent(checkID, "aspirin"),
	}}
	detector, _ := newTestDetector(t, checks, events)

	first, err := detector.Detect(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := detector.Detect(context.Background(), uuid.New(), 48)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
