package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/api/middleware"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// SessionHandler serves the login screen and the session endpoints.
type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"next" form:"next"`
}

type permissionsResponse struct {
	IsAdmin           bool `json:"is_admin"`
	IsStaff           bool `json:"is_staff"`
	CanManageUsers    bool `json:"can_manage_users"`
	CanManageProducts bool `json:"can_manage_products"`
	CanViewAnalytics  bool `json:"can_view_analytics"`
}

type sessionResponse struct {
	State       string              `json:"state"`
	User        *domain.UserProfile `json:"user"`
	Loading     bool                `json:"loading"`
	Permissions permissionsResponse `json:"permissions"`
}

// LoginScreen handles GET /login.
//
// @Summary      Login screen state
// @Description  Redirects to the requested page when already signed in.
// @Tags         session
// @Produce      json
// @Param        next  query     string  false  "Page to return to"
// @Success      200   {object}  sessionResponse
// @Success      303
// @Failure      503   {object}  map[string]string
// @Router       /login [get]
func (h *SessionHandler) LoginScreen(c echo.Context) error {
	snap := h.session.Snapshot()
	switch {
	case snap.State == domain.StateAuthenticated:
		return c.Redirect(http.StatusSeeOther, safeNext(c.QueryParam("next")))
	case !snap.State.Settled():
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"state": snap.State.String()})
	}
	return c.JSON(http.StatusOK, toSessionResponse(snap))
}

// Login handles POST /login.
//
// @Summary      Sign in
// @Description  Only admin accounts may sign in; the token is stored for later runs.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      303
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: MessageOf(err)})
	}

	if _, err := h.session.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return c.JSON(StatusOf(err), errorResponse{Error: MessageOf(err)})
	}

	next := req.Next
	if next == "" {
		next = c.QueryParam("next")
	}
	return c.Redirect(http.StatusSeeOther, safeNext(next))
}

// Logout handles POST /logout.
//
// @Summary      Sign out
// @Tags         session
// @Success      303
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Session handles GET /session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

func toSessionResponse(s domain.Session) sessionResponse {
	resp := sessionResponse{State: s.State.String(), User: s.User, Loading: s.Loading}
	if s.User != nil {
		resp.Permissions = permissionsResponse{
			IsAdmin:           s.User.Role == domain.RoleAdmin,
			IsStaff:           s.User.Role == domain.RoleStaff,
			CanManageUsers:    s.User.Permissions.CanManageUsers(),
			CanManageProducts: s.User.Permissions.CanManageProducts(),
			CanViewAnalytics:  s.User.Permissions.CanViewAnalytics(),
		}
	}
	return resp
}

// safeNext keeps post-login redirects on this host.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if next == middleware.LoginPath || strings.HasPrefix(next, middleware.LoginPath+"?") {
		return "/"
	}
	return next
}
