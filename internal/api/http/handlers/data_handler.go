package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/service"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util/errorutil"
)

// DataHandler serves the protected sample resources: the rate-limited secure
// data endpoint and the cached report.
type DataHandler struct {
	reports *service.ReportService
}

// NewDataHandler constructs the handler.
func NewDataHandler(reports *service.ReportService) *DataHandler {
	return &DataHandler{reports: reports}
}

// SecureData handles GET /secure-data.
func (h *DataHandler) SecureData(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"message": fmt.Sprintf("hello %s, this is secured data", principal.Subject),
			"role":    string(principal.Role),
		},
	})
}

// ReportSummary handles GET /reports/summary.
func (h *DataHandler) ReportSummary(c *fiber.Ctx) error {
	summary, cached, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data":   summary,
		"cached": cached,
	})
}
