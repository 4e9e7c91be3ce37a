package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

type userRequest struct {
	FullName string      `json:"full_name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin staff customer"`
	IsActive *bool       `json:"is_active"`
}

// NewUserHandler returns the users resource handler.
func NewUserHandler(service ports.ResourceService[domain.User, domain.UserDraft]) *ResourceHandler[domain.User, domain.UserDraft] {
	return NewResourceHandler(service, DecodeUserDraft)
}

// DecodeUserDraft binds the users form. is_active defaults to true when
// omitted; the password rule depends on the dialog and is left to the
// controller.
func DecodeUserDraft(c echo.Context) (domain.UserDraft, error) {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return domain.UserDraft{}, &domain.ValidationError{Message: "invalid request body"}
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return domain.UserDraft{}, err
	}

	draft := domain.UserDraft{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		draft.IsActive = *req.IsActive
	}
	return draft, nil
}
