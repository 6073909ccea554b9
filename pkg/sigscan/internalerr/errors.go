package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("not found")
)
