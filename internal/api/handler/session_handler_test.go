package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lenshive/admin-console/internal/core/domain"
)

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Login_RedirectsToNext(t *testing.T) {
	e := newEcho()
	stub := &stubSession{
		loginFn: func(_ context.Context, identifier, secret string) (*domain.UserProfile, error) {
			if identifier != "root@lenshive.pk" || secret != "s3cret" {
				t.Fatalf("unexpected credentials %s/%s", identifier, secret)
			}
			return &domain.UserProfile{Role: domain.RoleAdmin}, nil
		},
	}
	h := NewSessionHandler(stub)

	c, rec := postJSON(e, "/login?next=%2Fproducts", `{"email":" root@lenshive.pk ","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/products" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestSessionHandler_Login_FormPost(t *testing.T) {
	e := newEcho()
	stub := &stubSession{
		loginFn: func(context.Context, string, string) (*domain.UserProfile, error) {
			return &domain.UserProfile{Role: domain.RoleAdmin}, nil
		},
	}
	h := NewSessionHandler(stub)

	form := url.Values{"email": {"root@lenshive.pk"}, "password": {"x"}, "next": {"//evil.example"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("off-site next must fall back to /, got %q", loc)
	}
}

func TestSessionHandler_Login_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"missing email", `{"password":"x"}`, nil, http.StatusBadRequest, "email is required"},
		{"bad email", `{"email":"nope","password":"x"}`, nil, http.StatusBadRequest, "email must be a valid email"},
		{"not admin", `{"email":"a@b.com","password":"x"}`, domain.ErrAdminRequired, http.StatusForbidden, "admin privileges required"},
		{"bad credentials", `{"email":"a@b.com","password":"x"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"backend down", `{"email":"a@b.com","password":"x"}`, domain.ErrLoginFailed, http.StatusBadGateway, "login failed, please try again"},
		{"backend message", `{"email":"a@b.com","password":"x"}`,
			&domain.RemoteError{Status: http.StatusBadRequest, Message: "Unable to log in with provided credentials."},
			http.StatusBadRequest, "Unable to log in with provided credentials."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubSession{
				loginFn: func(context.Context, string, string) (*domain.UserProfile, error) {
					if tc.err == nil {
						t.Fatalf("login must not be attempted")
					}
					return nil, tc.err
				},
			}
			c, rec := postJSON(e, "/login", tc.body)
			if err := NewSessionHandler(stub).Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, resp.Error)
			}
		})
	}
}

func TestSessionHandler_LoginScreen(t *testing.T) {
	cases := []struct {
		state  domain.SessionState
		status int
	}{
		{domain.StateAuthenticated, http.StatusSeeOther},
		{domain.StateVerifying, http.StatusServiceUnavailable},
		{domain.StateUnauthenticated, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			e := newEcho()
			stub := &stubSession{snap: domain.Session{State: tc.state, User: &domain.UserProfile{Role: domain.RoleAdmin}}}
			req := httptest.NewRequest(http.MethodGet, "/login?next=%2Fusers", nil)
			rec := httptest.NewRecorder()

			if err := NewSessionHandler(stub).LoginScreen(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusSeeOther && rec.Header().Get(echo.HeaderLocation) != "/users" {
				t.Fatalf("unexpected location %q", rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	e := newEcho()
	stub := &stubSession{}
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	if err := NewSessionHandler(stub).Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if stub.logouts != 1 {
		t.Fatalf("expected one logout, got %d", stub.logouts)
	}
}

func TestSessionHandler_SessionReportsPermissions(t *testing.T) {
	e := newEcho()
	user := &domain.UserProfile{
		Email:       "root@lenshive.pk",
		Role:        domain.RoleAdmin,
		Permissions: domain.Permissions{domain.PermManageProducts: true},
	}
	stub := &stubSession{snap: domain.Session{State: domain.StateAuthenticated, User: user}}
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()

	if err := NewSessionHandler(stub).Session(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.State != "authenticated" || !resp.Permissions.IsAdmin || resp.Permissions.IsStaff {
		t.Fatalf("unexpected session %+v", resp)
	}
	if !resp.Permissions.CanManageProducts || resp.Permissions.CanManageUsers {
		t.Fatalf("missing keys must read as false: %+v", resp.Permissions)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/products":          "/products",
		"/users?page=2":      "/users?page=2",
		"//evil.example":     "/",
		"/\\evil.example":    "/",
		"https://evil.test/": "/",
		"/login":             "/",
		"/login?next=/":      "/",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}
