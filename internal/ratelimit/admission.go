// Package ratelimit implements fixed-window request admission over the shared
// store. Counting happens before authentication, so floods of invalid tokens
// are throttled like any other traffic.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/auth-gateway/internal/store"
)

const rateKeyPrefix = "rate_limit:"

// ErrAdmissionUnavailable means the counter store could not be consulted.
// The admission controller fails closed on it.
var ErrAdmissionUnavailable = errors.New("ratelimit: admission store unavailable")

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Admitter counts requests per caller identity within a fixed window.
type Admitter struct {
	counters store.Store
}

// NewAdmitter builds an admitter over the given store.
func NewAdmitter(counters store.Store) *Admitter {
	return &Admitter{counters: counters}
}

// Admit consumes one slot for identity and decides whether the request may
// proceed. A consumed slot is never refunded, even if the request later
// fails; the limit counts attempts, not successes.
func (a *Admitter) Admit(ctx context.Context, identity string, limit int64, window time.Duration) (Decision, error) {
	key := rateKey(identity)

	count, err := a.counters.Increment(ctx, key, window)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrAdmissionUnavailable, err)
	}
	if count <= limit {
		return Decision{Allowed: true}, nil
	}

	retryAfter, err := a.counters.TTLRemaining(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrAdmissionUnavailable, err)
	}
	// The window can lapse between the increment and the TTL lookup; a
	// rejected caller still gets a positive retry hint.
	if retryAfter <= 0 {
		retryAfter = window
	}
	return Decision{Allowed: false, RetryAfter: retryAfter}, nil
}

func rateKey(identity string) string {
	return rateKeyPrefix + identity
}
