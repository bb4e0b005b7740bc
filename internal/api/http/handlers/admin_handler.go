package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/observability"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util/errorutil"
)

// AdminHandler exposes the admin-only dashboard.
type AdminHandler struct {
	metrics *observability.Metrics
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{metrics: metrics}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	requests, errCounts, rejections := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"message":              "welcome admin",
			"admin":                principal.Subject,
			"requests":             requests,
			"errors":               errCounts,
			"admission_rejections": rejections,
		},
	})
}
