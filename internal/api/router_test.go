package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
	"github.com/lenshive/admin-console/internal/core/service"
)

type memAuth struct{ role domain.Role }

func (m memAuth) Login(context.Context, string, string) (string, *domain.UserProfile, error) {
	return "t1", &domain.UserProfile{Email: "root@lenshive.pk", Role: m.role}, nil
}

func (m memAuth) Verify(context.Context, string) (*domain.UserProfile, error) {
	return &domain.UserProfile{Email: "root@lenshive.pk", Role: m.role}, nil
}

type memTokens struct{ token string }

func (m *memTokens) Load(context.Context) (string, error) { return m.token, nil }

func (m *memTokens) Save(_ context.Context, token string) error {
	m.token = token
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.token = ""
	return nil
}

type memGateway[E any] struct{ items []E }

func (g *memGateway[E]) List(context.Context) ([]E, error) { return g.items, nil }
func (g *memGateway[E]) Get(context.Context, string) (E, error) {
	var zero E
	return zero, domain.ErrNotFound
}
func (g *memGateway[E]) Create(context.Context, ports.Payload) (E, error) {
	var zero E
	return zero, domain.ErrRemote
}
func (g *memGateway[E]) Update(context.Context, string, ports.Payload) (E, error) {
	var zero E
	return zero, domain.ErrRemote
}
func (g *memGateway[E]) Delete(context.Context, string) error { return nil }

type memProducts struct {
	memGateway[domain.Product]
}

func (memProducts) DeleteImage(context.Context, string, int64) error { return nil }
func (memProducts) SetPrimaryImage(context.Context, string, int64) error { return nil }

func newTestRouter(t *testing.T, tokens *memTokens) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()
	guard := service.NewGuard(memAuth{role: domain.RoleAdmin}, tokens, log)
	guard.Verify(context.Background())

	products := &memProducts{memGateway[domain.Product]{items: []domain.Product{{ID: 1, Name: "Aviator"}}}}
	users := &memGateway[domain.User]{items: []domain.User{{ID: "u-1", Email: "a@lenshive.pk"}}}

	reg := prometheus.NewRegistry()
	return NewRouter(Dependencies{
		Session:    guard,
		Products:   service.NewProductController(products, guard, nil, log),
		Users:      service.NewController(service.UserSpec(), ports.ResourceGateway[domain.User](users), guard, nil, log),
		Dashboard:  service.NewDashboardService(products, users, nil, log),
		Registerer: reg,
		Gatherer:   reg,
		Log:        log,
	})
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	e := newTestRouter(t, &memTokens{})

	for _, target := range []string{"/health", "/health/ready", "/session", "/login", "/metrics"} {
		if rec := serve(e, http.MethodGet, target); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestRouter_ProtectedRedirectsWithoutSession(t *testing.T) {
	e := newTestRouter(t, &memTokens{})

	rec := serve(e, http.MethodGet, "/products")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?next=%2Fproducts" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRouter_AuthenticatedScreens(t *testing.T) {
	e := newTestRouter(t, &memTokens{token: "t1"})

	rec := serve(e, http.MethodGet, "/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var view struct {
		Items []domain.Product `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Name != "Aviator" {
		t.Fatalf("unexpected items %+v", view.Items)
	}

	for _, target := range []string{"/", "/users", "/catalog/options", "/users/view"} {
		if rec := serve(e, http.MethodGet, target); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
	}

	if rec := serve(e, http.MethodGet, "/login?next=%2Fusers"); rec.Header().Get(echo.HeaderLocation) != "/users" {
		t.Fatalf("signed-in login screen must redirect, got %d", rec.Code)
	}
}

func TestRouter_LogoutEndsSession(t *testing.T) {
	tokens := &memTokens{token: "t1"}
	e := newTestRouter(t, tokens)

	rec := serve(e, http.MethodPost, "/logout")
	if rec.Code != http.StatusSeeOther || tokens.token != "" {
		t.Fatalf("logout did not clear the session: %d %q", rec.Code, tokens.token)
	}
	if rec := serve(e, http.MethodGet, "/users"); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestRouter_LoginThenRemoveRequiresConfirmation(t *testing.T) {
	tokens := &memTokens{}
	e := newTestRouter(t, tokens)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"root@lenshive.pk","password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || tokens.token != "t1" {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	if rec := serve(e, http.MethodPost, "/users/u-1/remove/confirm"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unrequested removal must be refused, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodPost, "/users/u-1/remove"); rec.Code != http.StatusOK {
		t.Fatalf("request removal: %d", rec.Code)
	}
	if rec := serve(e, http.MethodPost, "/users/u-1/remove/confirm"); rec.Code != http.StatusOK {
		t.Fatalf("confirmed removal: %d %s", rec.Code, rec.Body.String())
	}
}
