package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/extraction"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/metrics"
)

// VerdictEngine evaluates risk rules over a profile and its extracted events.
type VerdictEngine interface {
	CheckRisk(profile *domain.Profile, events []*domain.HealthEvent) domain.Verdict
}

// InsightDetector finds stacking insights over a profile's recent checks.
type InsightDetector interface {
	Detect(ctx context.Context, profileID uuid.UUID, windowHours int) ([]domain.StackingInsight, error)
}

// Service is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	profiles     domain.ProfileRepository
	checks       domain.CheckRepository
	events       domain.EventRepository
	extractor    domain.Extractor
	engine       VerdictEngine
	detector     InsightDetector
	limiter      domain.SubmissionLimiter
	clock        clockwork.Clock
	insightGroup singleflight.Group
}

// NewService creates the application layer service.
// limiter may be nil when no rate limiting backend is configured.
func NewService(
	profiles domain.ProfileRepository,
	checks domain.CheckRepository,
	events domain.EventRepository,
	extractor domain.Extractor,
	engine VerdictEngine,
	detector InsightDetector,
	limiter domain.SubmissionLimiter,
	clock clockwork.Clock,
) *Service {
	return &Service{
		profiles:  profiles,
		checks:    checks,
		events:    events,
		extractor: extractor,
		engine:    engine,
		detector:  detector,
		limiter:   limiter,
		clock:     clock,
	}
}

var _ domain.AppService = (*Service)(nil)

// SubmitCheck runs the full pipeline for one raw-text submission: rate limit,
// extraction, post-processing, verdict, persistence. The verdict is computed
// before anything is persisted, so a stored check always carries one.
func (s *Service) SubmitCheck(ctx context.Context, profileID uuid.UUID, rawText string) (*domain.Check, error) {
	start := s.clock.Now()

	if allowed := s.allowSubmission(ctx, profileID); !allowed {
		metrics.ChecksProcessedTotal.WithLabelValues("rate_limited").Inc()
		metrics.RateLimitedSubmissionsTotal.Inc()
		return nil, domain.ErrRateLimited
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		metrics.ChecksProcessedTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result, err := s.extractor.Extract(ctx, rawText)
	if err != nil {
		metrics.ChecksProcessedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to extract events: %w", err)
	}
	if result == nil {
		result = &domain.ExtractionResult{}
	}

	extraction.PostProcess(rawText, result)

	verdict, fellBack := s.computeVerdict(profile, result.Events)
	if fellBack {
		result.Warnings = append(result.Warnings, "Verdict computation failed")
	}

	now := s.clock.Now().UTC()
	check := &domain.Check{
		ID:                uuid.New(),
		ProfileID:         profileID,
		RawText:           rawText,
		Verdict:           verdict,
		FollowUpQuestions: result.FollowUpQuestions,
		Warnings:          result.Warnings,
		CreatedAt:         now,
	}

	for _, event := range result.Events {
		event.ID = uuid.New()
		event.CheckID = check.ID
		event.CreatedAt = now
	}

	if err := s.checks.Create(ctx, check); err != nil {
		metrics.ChecksProcessedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist check: %w", err)
	}
	if err := s.events.CreateBatch(ctx, result.Events); err != nil {
		metrics.ChecksProcessedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist health events: %w", err)
	}

	metrics.ChecksProcessedTotal.WithLabelValues("ok").Inc()
	metrics.RiskVerdictsTotal.WithLabelValues(string(verdict.RiskLevel)).Inc()
	for _, match := range verdict.Matched {
		metrics.RuleMatchesTotal.WithLabelValues(match.Rule).Inc()
	}
	metrics.CheckProcessingDuration.Observe(s.clock.Since(start).Seconds())

	return check, nil
}

// allowSubmission consults the rate limiter and fails open on limiter errors.
func (s *Service) allowSubmission(ctx context.Context, profileID uuid.UUID) bool {
	if s.limiter == nil {
		return true
	}
	allowed, err := s.limiter.Allow(ctx, profileID)
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing submission",
			"profile_id", profileID.String(), "error", err)
		return true
	}
	return allowed
}

// computeVerdict isolates the rule engine behind a recover barrier. A panic
// inside rule evaluation must never block event capture.
func (s *Service) computeVerdict(profile *domain.Profile, events []*domain.HealthEvent) (verdict domain.Verdict, fellBack bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("verdict computation panicked", "panic", r)
			metrics.VerdictFallbacksTotal.Inc()
			verdict = domain.SafeDefaultVerdict()
			fellBack = true
		}
	}()
	return s.engine.CheckRisk(profile, events), false
}

// Insights runs stacking detection over the profile's recent checks.
// Concurrent requests for the same profile and window collapse into one
// detector run.
func (s *Service) Insights(ctx context.Context, profileID uuid.UUID, windowHours int) ([]domain.StackingInsight, error) {
	key := fmt.Sprintf("%s:%d", profileID, windowHours)
	v, err, _ := s.insightGroup.Do(key, func() (any, error) {
		start := s.clock.Now()
		insights, err := s.detector.Detect(ctx, profileID, windowHours)
		if err != nil {
			return nil, err
		}
		for _, insight := range insights {
			metrics.StackingInsightsTotal.WithLabelValues(insight.Meta.ClassKey).Inc()
		}
		metrics.InsightQueryDuration.Observe(s.clock.Since(start).Seconds())
		return insights, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.StackingInsight), nil
}

// GetProfile retrieves a profile by ID.
func (s *Service) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, profileID)
}

// SaveProfile creates or replaces a profile's allergy and medication lists.
func (s *Service) SaveProfile(ctx context.Context, profileID uuid.UUID, knownAllergies []string, currentMedications []domain.Medication) (*domain.Profile, error) {
	return s.profiles.Upsert(ctx, profileID, knownAllergies, currentMedications)
}
