package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-gateway/internal/store"
)

type failingStore struct{}

func (failingStore) Revoke(context.Context, string, time.Duration) error { return errors.New("down") }
func (failingStore) IsRevoked(context.Context, string) (bool, error)     { return false, errors.New("down") }
func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("down")
}
func (failingStore) TTLRemaining(context.Context, string) (time.Duration, error) {
	return 0, errors.New("down")
}

func TestAdmit_WithinLimit(t *testing.T) {
	admitter := NewAdmitter(store.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := admitter.Admit(ctx, "alice", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d should be admitted", i+1)
	}

	decision, err := admitter.Admit(ctx, "alice", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
}

func TestAdmit_IdentitiesIndependent(t *testing.T) {
	admitter := NewAdmitter(store.NewMemoryStore())
	ctx := context.Background()

	decision, err := admitter.Admit(ctx, "alice", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	decision, err = admitter.Admit(ctx, "alice", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	decision, err = admitter.Admit(ctx, "bob", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "bob's window is separate from alice's")
}

func TestAdmit_WindowReset(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := store.NewMemoryStore()
	s.Now = func() time.Time { return now }
	admitter := NewAdmitter(s)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := admitter.Admit(ctx, "alice", 2, time.Minute)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}
	decision, err := admitter.Admit(ctx, "alice", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	now = base.Add(61 * time.Second)
	decision, err = admitter.Admit(ctx, "alice", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "a fresh window admits again")
}

func TestAdmit_ConcurrentBoundary(t *testing.T) {
	admitter := NewAdmitter(store.NewMemoryStore())
	ctx := context.Background()

	const limit = 25
	var wg sync.WaitGroup
	decisions := make(chan Decision, 2*limit)

	wg.Add(2 * limit)
	for i := 0; i < 2*limit; i++ {
		go func() {
			defer wg.Done()
			decision, err := admitter.Admit(ctx, "alice", limit, time.Minute)
			assert.NoError(t, err)
			decisions <- decision
		}()
	}
	wg.Wait()
	close(decisions)

	allowed, rejected := 0, 0
	for decision := range decisions {
		if decision.Allowed {
			allowed++
		} else {
			rejected++
		}
	}
	assert.Equal(t, limit, allowed, "exactly limit requests pass")
	assert.Equal(t, limit, rejected, "the rest are rejected")
}

func TestAdmit_StoreUnavailable(t *testing.T) {
	admitter := NewAdmitter(failingStore{})

	_, err := admitter.Admit(context.Background(), "alice", 5, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdmissionUnavailable)
}
