package entity

import "errors"

var (
	// ErrEventNotFound means the event id did not resolve. The attempt is
	// terminal and never retried.
	ErrEventNotFound = errors.New("business event not found")

	// ErrClaimConflict means another worker claimed one of the rows between
	// read and write. Expected under concurrency, never retried.
	ErrClaimConflict = errors.New("event already claimed by another match")
)
