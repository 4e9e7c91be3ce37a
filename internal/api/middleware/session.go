package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// LoginPath is where unauthenticated operators are sent.
const LoginPath = "/login"

const userKey = "session_user"

// SessionReader is the part of the session guard the middleware reads.
type SessionReader interface {
	Snapshot() domain.Session
}

// RequireSession gates a route on an authenticated session. While the stored
// token is still being verified nothing is rendered; once the session settles
// as unauthenticated the request is redirected to the login screen.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			switch {
			case snap.State == domain.StateAuthenticated && snap.User != nil:
				c.Set(userKey, snap.User)
				return next(c)
			case !snap.State.Settled():
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"state": snap.State.String()})
			default:
				return c.Redirect(http.StatusSeeOther, LoginRedirect(c.Request()))
			}
		}
	}
}

// LoginRedirect returns the login URL that brings the operator back to r
// afterwards. Only GET requests are worth coming back to.
func LoginRedirect(r *http.Request) string {
	if r.Method != http.MethodGet || r.URL.RequestURI() == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

// UserFrom returns the profile RequireSession stored on the context.
func UserFrom(c echo.Context) *domain.UserProfile {
	u, _ := c.Get(userKey).(*domain.UserProfile)
	return u
}
