package wavedb

import "errors"

// Sentinel errors returned by DB methods, always wrapped with %w so callers
// can both errors.Is against these and read the enclosing context.
var (
	// ErrUnknownHandle is returned when a SignalHandle was never produced by
	// this DB's Hierarchy call.
	ErrUnknownHandle = errors.New("wavedb: unknown signal handle")

	// ErrClosed is returned by any call made after Close.
	ErrClosed = errors.New("wavedb: database is closed")

	// ErrBackendFailure wraps an error returned by the underlying Backend.
	ErrBackendFailure = errors.New("wavedb: backend failure")
)
