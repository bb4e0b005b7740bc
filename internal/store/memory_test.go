package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore(base time.Time) (*MemoryStore, *time.Time) {
	now := base
	s := NewMemoryStore()
	s.Now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStore_IncrementFixedWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, now := newClockedStore(base)
	ctx := context.Background()

	count, err := s.Increment(ctx, "rate_limit:alice", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Later increments keep counting without touching the TTL.
	*now = base.Add(50 * time.Second)
	count, err = s.Increment(ctx, "rate_limit:alice", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ttl, err := s.TTLRemaining(ctx, "rate_limit:alice")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, ttl)

	// Once the window lapses the key vanishes and counting restarts.
	*now = base.Add(61 * time.Second)
	count, err = s.Increment(ctx, "rate_limit:alice", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_IncrementIsolatesKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Increment(ctx, "rate_limit:alice", time.Minute)
	require.NoError(t, err)

	count, err := s.Increment(ctx, "rate_limit:bob", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_IncrementConcurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const workers = 100
	results := make(chan int64, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			count, err := s.Increment(ctx, "rate_limit:alice", time.Minute)
			assert.NoError(t, err)
			results <- count
		}()
	}
	wg.Wait()
	close(results)

	// Every increment must observe a distinct pre-increment value.
	seen := make(map[int64]bool, workers)
	for count := range results {
		assert.False(t, seen[count], "duplicate count %d", count)
		seen[count] = true
	}
	assert.Len(t, seen, workers)
	assert.True(t, seen[int64(workers)])
}

func TestMemoryStore_RevokeExpires(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, now := newClockedStore(base)
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "revoked_token:abc", 30*time.Minute))

	revoked, err := s.IsRevoked(ctx, "revoked_token:abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "revoked_token:other")
	require.NoError(t, err)
	assert.False(t, revoked)

	*now = base.Add(31 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "revoked_token:abc")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation entry should self-clean after its TTL")
}

func TestMemoryStore_TTLRemainingMissingKey(t *testing.T) {
	s := NewMemoryStore()

	ttl, err := s.TTLRemaining(context.Background(), "rate_limit:ghost")
	require.NoError(t, err)
	assert.Zero(t, ttl)
}
