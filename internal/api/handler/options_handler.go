package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
)

type optionsResponse struct {
	FrameColors     []string      `json:"frame_colors"`
	Sizes           []string      `json:"sizes"`
	LensOptions     []string      `json:"lens_options"`
	Categories      []string      `json:"categories"`
	Roles           []domain.Role `json:"roles"`
	DefaultCurrency string        `json:"default_currency"`
}

// Options handles GET /catalog/options.
//
// @Summary      Form picker options
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  optionsResponse
// @Router       /catalog/options [get]
func Options(c echo.Context) error {
	return c.JSON(http.StatusOK, optionsResponse{
		FrameColors:     domain.FrameColorOptions,
		Sizes:           domain.SizeOptions,
		LensOptions:     domain.LensOptionChoices,
		Categories:      domain.CategoryOptions,
		Roles:           []domain.Role{domain.RoleCustomer, domain.RoleStaff, domain.RoleAdmin},
		DefaultCurrency: domain.DefaultCurrency,
	})
}
