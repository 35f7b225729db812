package errors

import "errors"

var (
	// ErrNotFound covers unknown ids and malformed ids alike: an id
	// that cannot parse as an ObjectID cannot match any stored
	// booking, and callers see one uniform not-found outcome.
	ErrNotFound = errors.New("booking not found")

	// ErrLockHeld means another request holds the advisory lock for
	// the same slot right now.
	ErrLockHeld = errors.New("slot lock already held")
)
