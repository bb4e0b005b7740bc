package auth

import (
	"context"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// Guard composes token validation with a required-role check.
type Guard struct {
	tokens *TokenManager
}

// NewGuard builds a guard over the given token manager.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authorize validates the token and then requires an exact role match.
// Validation failures propagate unchanged; a role mismatch yields
// ErrForbidden so callers can distinguish 401 from 403 outcomes.
func (g *Guard) Authorize(ctx context.Context, tokenStr string, required domain.Role) (*Claims, error) {
	claims, err := g.tokens.Validate(ctx, tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Role != required {
		return nil, ErrForbidden
	}
	return claims, nil
}
