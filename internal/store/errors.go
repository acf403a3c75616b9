package store

import "errors"

// Domain-level store error sentinels.
var (
	// ErrKeyNotFound is returned by KV implementations for absent or
	// expired keys.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreUnavailable wraps transport-level failures so callers can
	// distinguish "try again later" from "never existed".
	ErrStoreUnavailable = errors.New("store unavailable")

	// Link errors
	ErrLinkNotFound = errors.New("link not found or expired")
	ErrURLRequired  = errors.New("URL is required")

	// Reply errors
	ErrRecordingIDRequired = errors.New("recording ID is required")
	ErrInvalidTimestamp    = errors.New("invalid reply timestamp")
)
