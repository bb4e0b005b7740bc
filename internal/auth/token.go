package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/store"
)

const revocationKeyPrefix = "revoked_token:"

// TokenManager issues and validates signed access tokens. Tokens are
// self-contained; the only server-side state consulted is the revocation
// store, keyed by the token's jti.
type TokenManager struct {
	secret      []byte
	ttl         time.Duration
	revocations store.Store
	now         func() time.Time
}

// NewTokenManager builds a manager signing with HS256 under the given secret.
func NewTokenManager(secret string, ttlMinutes int, revocations store.Store) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret:      []byte(secret),
		ttl:         time.Duration(ttlMinutes) * time.Minute,
		revocations: revocations,
		now:         time.Now,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	Role domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for an already-authenticated subject. The
// role comes from the credential store; issuance itself writes nothing.
func (tm *TokenManager) Issue(subject string, role domain.Role) (string, *domain.Token, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}

	meta := &domain.Token{
		ID:        claims.ID,
		Subject:   subject,
		Role:      role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	return signed, meta, nil
}

// Validate checks signature, expiry, revocation and claim completeness, in
// that order, and returns the claims on success. It holds no per-request
// state and is safe for concurrent use.
func (tm *TokenManager) Validate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := tm.revocations.IsRevoked(ctx, revocationKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	if claims.Subject == "" || claims.Role == "" || !claims.Role.Valid() {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Revoke stores the token's identifier with a TTL matching its remaining
// lifetime, so the entry self-cleans once expiry would reject it anyway.
// Revoking an already-expired token is a no-op.
func (tm *TokenManager) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := tm.parse(tokenStr)
	if errors.Is(err, ErrTokenExpired) {
		return nil
	}
	if err != nil {
		return err
	}

	remaining := claims.ExpiresAt.Time.Sub(tm.now())
	if remaining <= 0 {
		return nil
	}
	if err := tm.revocations.Revoke(ctx, revocationKey(claims.ID), remaining); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	return nil
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func revocationKey(tokenID string) string {
	return revocationKeyPrefix + tokenID
}
