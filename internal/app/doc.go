// Package app provides the application service layer.
//
// Orchestrates use cases: check submission, insight detection, profile saves.
// Sits between HTTP handlers and domain repositories. Depends on domain interfaces, not concrete implementations.
package app
