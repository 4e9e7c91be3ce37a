package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lenshive/admin-console/docs"
	"github.com/lenshive/admin-console/internal/api/handler"
	"github.com/lenshive/admin-console/internal/api/middleware"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
	"github.com/lenshive/admin-console/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Session   ports.SessionService
	Products  ports.ProductService
	Users     ports.ResourceService[domain.User, domain.UserDraft]
	Dashboard ports.DashboardService
	// Health checks run by GET /health/ready.
	Health []handlers.Dependency

	AllowedOrigins []string
	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "console",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes, metrics and docs (no session required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.Health...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session ---
	sessionHandler := handler.NewSessionHandler(deps.Session)
	e.GET(middleware.LoginPath, sessionHandler.LoginScreen)
	e.POST(middleware.LoginPath, sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)
	e.GET("/session", sessionHandler.Session)

	// --- Console screens (admin session required) ---
	guard := []echo.MiddlewareFunc{
		middleware.RequireSession(deps.Session),
		middleware.RequireRole(domain.RoleAdmin),
	}

	e.GET("/", handler.NewDashboardHandler(deps.Dashboard, deps.Session).Get, guard...)
	e.GET("/catalog/options", handler.Options, guard...)
	handler.NewProductHandler(deps.Products).Register(e.Group("/products", guard...))
	handler.NewUserHandler(deps.Users).Register(e.Group("/users", guard...))

	return e
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
