package models

import "errors"

// Error taxonomy shared by the store, dispatcher and config manager. Callers
// classify failures with errors.Is; messages carry the detail.
var (
	// ErrNotFound: a lookup by id matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRequest: the caller asked for something unanswerable, such as
	// an update with no fields supplied.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConstraint: a NOT NULL or size-limit constraint was violated.
	ErrConstraint = errors.New("constraint violation")

	// ErrProgramNotFound: no candidate program could be spawned in Auto mode.
	ErrProgramNotFound = errors.New("no suitable program found")

	// ErrConfig: a required custom path or script is missing, or validation of
	// a new configuration failed.
	ErrConfig = errors.New("configuration error")

	// ErrLockBusy: the shared store lock could not be acquired. Surfaced
	// instead of blocking so a re-entrant call fails fast rather than
	// deadlocking the single shared connection.
	ErrLockBusy = errors.New("store lock busy")

	// ErrStorage: the underlying database or file I/O failed.
	ErrStorage = errors.New("storage failure")
)
