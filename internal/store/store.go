// Package store defines the shared key-value state behind token revocation
// and request admission. All entries carry a TTL so the store never grows
// beyond active revocations plus active rate-limit windows.
package store

import (
	"context"
	"time"
)

// Store is the single shared mutable resource of the auth core. Callers
// namespace their own keys; implementations only guarantee TTL semantics and
// atomicity of Increment.
type Store interface {
	// Revoke records a revocation marker under key that disappears after ttl.
	Revoke(ctx context.Context, key string, ttl time.Duration) error

	// IsRevoked reports whether a live revocation marker exists for key.
	IsRevoked(ctx context.Context, key string) (bool, error)

	// Increment atomically increments the counter at key and returns the new
	// value. The first increment on a fresh key establishes the key's TTL as
	// window; later increments never reset it (fixed window).
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// TTLRemaining returns how long until key expires, or zero when the key
	// does not exist or carries no TTL.
	TTLRemaining(ctx context.Context, key string) (time.Duration, error)
}
