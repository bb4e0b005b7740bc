package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/domain"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, reconstructed purely from
// token claims. No account lookup happens on the hot path.
type Principal struct {
	Subject   string
	Role      domain.Role
	TokenID   string
	RawToken  string
	ExpiresAt time.Time
}

// Middleware validates bearer tokens and stores the principal in the request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Validate(c.UserContext(), parts[1])
	if err != nil {
		return mapValidationError(err)
	}

	principal := &Principal{
		Subject:   claims.Subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		RawToken:  parts[1],
		ExpiresAt: claims.ExpiresAt.Time,
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// RequireRole gates a route on an exact role match. Composite or unknown
// roles never pass; there is no hierarchy.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != required {
			return apperrors.NewForbidden(fmt.Sprintf("access forbidden: requires %s role", required))
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, ErrAuthUnavailable):
		return apperrors.NewUnavailable("unable to verify token")
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewUnauthorized("token expired")
	case errors.Is(err, ErrTokenRevoked):
		return apperrors.NewUnauthorized("token has been revoked")
	case errors.Is(err, ErrInvalidClaims):
		return apperrors.NewUnauthorized("invalid token payload")
	default:
		return apperrors.NewUnauthorized("invalid token")
	}
}
