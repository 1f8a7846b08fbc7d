package storage

import "errors"

// Storage error taxonomy. Backends wrap driver errors around these sentinels
// so handlers can translate them without knowing which driver is in use.
var (
	// ErrNotFound is returned when a lookup matches no row, or when an
	// update/delete affects zero rows.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when the database rejects a write due to a
	// constraint (duplicate key, foreign key, null column). The wrapped
	// message carries the driver's error text.
	ErrConflict = errors.New("constraint violation")

	// ErrConnection is returned when the database is unreachable or rejects
	// the credentials.
	ErrConnection = errors.New("database unreachable")
)
