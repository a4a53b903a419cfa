// Package server implements the HTTP server using Echo framework.
//
// Routes: check submission, profile reads and saves, stacking insights, plus
// liveness, readiness, and Prometheus metrics endpoints.
package server
