package domain

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for the given ID.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrCheckNotFound is returned when no check exists for the given ID.
	ErrCheckNotFound = errors.New("check not found")
	// ErrRateLimited is returned by SubmitCheck when a profile exceeds its
	// submission budget.
	ErrRateLimited = errors.New("submission rate limit exceeded")
)
