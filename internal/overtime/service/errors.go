package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when an operation is called without an
	// authenticated session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrMissingTarget is returned when no target username can be resolved,
	// neither from the override nor from the session.
	ErrMissingTarget = errors.New("no target user resolvable")

	// ErrForbidden is returned when a non-admin session acts on another
	// user's data.
	ErrForbidden = errors.New("cannot act on behalf of another user without admin role")

	// ErrInvalidInput is returned when date or time fields cannot be parsed.
	ErrInvalidInput = errors.New("invalid date or time input")

	// ErrInvalidTimeRange is returned when an entry does not end strictly
	// after it starts. The wording is user-facing.
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrEntryNotFound is returned when a removal names an entry id that does
	// not exist. Removal of a missing id is an error, not a silent no-op.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrRepository wraps unexpected datastore failures so callers can map
	// them to a generic message without leaking driver details.
	ErrRepository = errors.New("repository failure")
)

// TargetUserNotFoundError reports a submission whose target username matched
// no user. It carries the spelling the caller supplied so the message can
// echo it back.
type TargetUserNotFoundError struct {
	Username string
}

func (e *TargetUserNotFoundError) Error() string {
	return fmt.Sprintf("target user %q not found", e.Username)
}

// repositoryError tags an unexpected store error with ErrRepository.
func repositoryError(err error) error {
	return fmt.Errorf("%w: %v", ErrRepository, err)
}
