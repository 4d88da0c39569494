// Package cache holds short-lived request state shared across handlers:
// idempotency keys claimed by retried checkout and payment requests.
package cache

import (
	"context"
	"time"
)

// KeyStore claims request keys for a limited time
type KeyStore interface {
	// Claim reserves key for ttl. It reports false when the key is already
	// held by an earlier request.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees key so the request can be retried
	Release(ctx context.Context, key string) error
	Close() error
}

var (
	_ KeyStore = (*InMemoryKeyStore)(nil)
	_ KeyStore = (*RedisKeyStore)(nil)
)
