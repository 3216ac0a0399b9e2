// Package sqlite implements the repository contracts on a SQLite database.
package sqlite

import (
	"database/sql"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
)

// Store bundles the SQLite-backed repositories.
type Store struct {
	db         *sql.DB
	accessLogs *accessLogRepo
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:         db,
		accessLogs: newAccessLogRepo(db),
	}
}

// AccessLogs returns the access-log repository.
func (s *Store) AccessLogs() repository.AccessLogStore {
	return s.accessLogs
}
