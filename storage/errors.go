package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an annotation is not found.
	ErrNotFound = errors.New("annotation not found")

	// ErrUnknownBackend is returned for an unsupported storage backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
