package engine

import "errors"

var (
	// ErrValidation indicates a request or input document is invalid.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a snapshot, theme or journal entry was not found.
	ErrNotFound = errors.New("not found")

	// ErrDrift indicates the snapshot changed on disk after it was loaded.
	ErrDrift = errors.New("drift detected")

	// ErrPendingChanges indicates a checked diff found widgets to reset.
	ErrPendingChanges = errors.New("widgets differ from theme")
)
