package status

import "errors"

// Error taxonomy for the booking workflows. Workflow code wraps these with
// fmt.Errorf("...: %w", ...) so handlers can map them to HTTP responses with
// errors.Is.
var (
	// ErrNotFound covers both absent rows and rows filtered out by a state
	// predicate (e.g. an expired entry session is reported as not found).
	ErrNotFound = errors.New("status: not found")

	// ErrConflict means a state-machine precondition failed (ticket not
	// active, session already used, reservation not pending).
	ErrConflict = errors.New("status: conflict")

	// ErrValidation means the input itself was malformed or out of range.
	ErrValidation = errors.New("status: validation failed")

	// ErrExternal wraps failures of outside collaborators (payout gateway,
	// redis, notification publisher). Never retried automatically.
	ErrExternal = errors.New("status: external failure")
)
