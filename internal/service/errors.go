package service

import "errors"

// Sentinel errors wrapped by backend implementations so callers can
// classify failures with errors.Is instead of matching message text.
var (
	// ErrNetwork indicates the backend was unreachable or the call
	// timed out. Transient.
	ErrNetwork = errors.New("network error")

	// ErrService indicates the backend was reached but reported a
	// failure.
	ErrService = errors.New("service error")

	// ErrNotFound indicates the addressed task no longer exists on
	// the backend.
	ErrNotFound = errors.New("not found")
)
