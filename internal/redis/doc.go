// Package redis implements Redis-backed supporting stores.
//
// Provides the Client wrapper and SubmissionLimiter (per-profile check rate
// limiting). The limiter fails open: a Redis outage never blocks risk scoring.
package redis
