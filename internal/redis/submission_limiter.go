package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/metrics"
)

// bucketTTL must outlive the one-minute window so late INCRs never resurrect
// an expired bucket with a fresh TTL.
const bucketTTL = 2 * time.Minute

// SubmissionLimiter implements fixed-window rate limiting for check
// submissions, one window per profile per minute.
type SubmissionLimiter struct {
	rdb             *goredis.Client
	clock           clockwork.Clock
	checksPerMinute int
}

// NewSubmissionLimiter creates a limiter allowing checksPerMinute submissions
// per profile in each one-minute window.
func NewSubmissionLimiter(rdb *goredis.Client, clock clockwork.Clock, checksPerMinute int) *SubmissionLimiter {
	return &SubmissionLimiter{
		rdb:             rdb,
		clock:           clock,
		checksPerMinute: checksPerMinute,
	}
}

// Allow reports whether the profile may submit another check in the current
// window. Redis failures fail open: the submission is allowed and the error
// is returned for logging.
func (l *SubmissionLimiter) Allow(ctx context.Context, profileID uuid.UUID) (bool, error) {
	key := l.bucketKey(profileID)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		metrics.RedisOpsTotal.WithLabelValues("incr", "error").Inc()
		return true, fmt.Errorf("rate limit check failed: %w", err)
	}
	metrics.RedisOpsTotal.WithLabelValues("incr", "success").Inc()

	if count == 1 {
		if err := l.rdb.Expire(ctx, key, bucketTTL).Err(); err != nil {
			metrics.RedisOpsTotal.WithLabelValues("expire", "error").Inc()
			return true, fmt.Errorf("rate limit expiry failed: %w", err)
		}
		metrics.RedisOpsTotal.WithLabelValues("expire", "success").Inc()
	}

	return count <= int64(l.checksPerMinute), nil
}

// bucketKey derives the fixed-window key: the minute bucket is part of the
// key, so windows roll over without coordination.
func (l *SubmissionLimiter) bucketKey(profileID uuid.UUID) string {
	minute := l.clock.Now().Unix() / 60
	return fmt.Sprintf("rate_limit:checks:%s:%d", profileID, minute)
}
