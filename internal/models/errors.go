package models

import "errors"

// Domain errors shared across the dispatch pipeline. Handlers translate
// these into HTTP status codes; nothing below this layer leaks driver
// or transport detail to callers.
var (
	// ErrInvalidEvent marks a malformed or incomplete event. It is raised
	// at classification time, before any store mutation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrUnknownUser marks a reference to a user that does not exist,
	// either the event's actor or a notification recipient.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNotFound marks an operation targeting a nonexistent notification.
	ErrNotFound = errors.New("notification not found")

	// ErrDuplicateUser marks a registration that collides with an existing
	// username or email.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrStoreUnavailable marks a persistence operation that could not
	// complete, including bounded-timeout expiry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
