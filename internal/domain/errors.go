package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnavailable  = errors.New("provider unavailable")
	ErrContextDone  = errors.New("context cancelled")
	ErrNoSources    = errors.New("all market sources exhausted")
	ErrBadEmbedding = errors.New("embedding dimensionality mismatch")
	ErrLockHeld     = errors.New("lock already held")
)
