package repository

import (
	"context"
	"time"
)

// StateStore abstracts the durable key-value storage behind the session and
// cart snapshots. Implementations: Redis (production) or in-memory (tests,
// local dev).
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errKeyNotFound{}

type errKeyNotFound struct{}

func (errKeyNotFound) Error() string { return "state store: key not found" }
