package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// DashboardHandler serves the landing screen.
type DashboardHandler struct {
	dashboard ports.DashboardService
	session   ports.SessionHandle
}

func NewDashboardHandler(dashboard ports.DashboardService, session ports.SessionHandle) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, session: session}
}

// Get handles GET /.
//
// @Summary      Dashboard
// @Description  Live product and user counts, recent products, sample charts and recent console activity.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Failure      502  {object}  errorResponse
// @Router       / [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	d, err := h.dashboard.Dashboard(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.session.Invalidate(c.Request().Context())
			return err
		}
		return c.JSON(StatusOf(err), errorResponse{Error: domain.MessageOf(err, "Failed to load dashboard")})
	}
	return c.JSON(http.StatusOK, d)
}
