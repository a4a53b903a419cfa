// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and tern for embedded migrations.
// Repositories implement domain interfaces: ProfileRepository,
// CheckRepository, EventRepository.
package database
