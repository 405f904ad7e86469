package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrMiss   = errors.New("cache miss")
	ErrClosed = errors.New("cache closed")
)
