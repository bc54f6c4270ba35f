package repository

import "errors"

// Sentinel kinds returned by repository implementations. Services translate
// these into domain errors; they are stable for errors.Is.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness constraint was violated at write
	// time. Under concurrent writes this is the authoritative duplicate
	// signal; any check-then-insert pre-check is a fast path only.
	ErrDuplicate = errors.New("duplicate")
)
