package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-gateway/internal/domain"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util/errorutil"
)

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code},
			})
		},
	})

	mw := NewMiddleware(tm)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"subject": principal.Subject})
	})
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddleware_BearerExtraction(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, _ := newTestManager(base)
	app := newProtectedApp(tm)

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ValidTokenPasses(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, _ := newTestManager(base)
	app := newProtectedApp(tm)

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_RoleMismatchIsForbidden(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, _ := newTestManager(base)
	app := newProtectedApp(tm)

	userToken, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tm.Issue("root@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_RevokedAndExpiredAreUnauthorized(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm, _, now := newTestManager(base)
	app := newProtectedApp(tm)

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(context.Background(), token))

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	fresh, _, err := tm.Issue("bob@example.com", domain.RoleUser)
	require.NoError(t, err)
	*now = base.Add(2 * time.Hour)
	resp = doRequest(t, app, "/protected", fresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_StoreUnavailableIs503(t *testing.T) {
	tm := NewTokenManager(testSecret, 60, brokenStore{})
	app := newProtectedApp(tm)

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
