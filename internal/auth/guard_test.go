package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

func TestGuard_AuthorizeExactMatch(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, _ := newTestManager(base)
	guard := NewGuard(tm)
	ctx := context.Background()

	adminToken, _, err := tm.Issue("root@example.com", domain.RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	claims, err := guard.Authorize(ctx, adminToken, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", claims.Subject)

	// A valid token with the wrong role is Forbidden, never Unauthorized.
	_, err = guard.Authorize(ctx, userToken, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	// Exact match also shuts admins out of user-only resources.
	_, err = guard.Authorize(ctx, adminToken, domain.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGuard_ValidatorFailuresPropagate(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, now := newTestManager(base)
	guard := NewGuard(tm)
	ctx := context.Background()

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, tm.Revoke(ctx, token))
	_, err = guard.Authorize(ctx, token, domain.RoleUser)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.NotErrorIs(t, err, ErrForbidden)

	*now = base.Add(2 * time.Hour)
	_, err = guard.Authorize(ctx, token, domain.RoleUser)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = guard.Authorize(ctx, "garbage", domain.RoleUser)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
