// Command console serves the LensHive admin console.
//
//	@title			LensHive Admin Console
//	@version		1.0
//	@description	Admin console over the LensHive catalog backend: session guard, products and users.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lenshive/admin-console/internal/api"
	"github.com/lenshive/admin-console/internal/app"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
	"github.com/lenshive/admin-console/internal/core/service"
	"github.com/lenshive/admin-console/internal/infrastructure/backend"
	"github.com/lenshive/admin-console/internal/infrastructure/config"
	mongodb "github.com/lenshive/admin-console/internal/infrastructure/db/mongo"
	"github.com/lenshive/admin-console/internal/infrastructure/http/handlers"
	"github.com/lenshive/admin-console/internal/infrastructure/queue"
	"github.com/lenshive/admin-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "lenshive-console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := app.OpenSession(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session")
	}
	defer session.Close()

	health := []handlers.Dependency{{Name: "backend", Check: session.Backend.Ping}}
	if session.Redis != nil {
		health = append(health, handlers.Dependency{Name: "redis", Check: handlers.RedisCheck(session.Redis)})
	}

	// The journal is optional; a nil ports.Journal disables it.
	var journal ports.Journal
	if cfg.JournalEnabled() {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Warn().Err(err).Msg("journal indexes not ensured")
		}

		dispatcher := queue.NewDispatcher(cfg.Journal.Workers, cfg.Journal.Buffer,
			mongodb.NewJournalRepository(db), logger.For("journal"))
		dispatcher.Start(context.Background())
		defer dispatcher.Close()

		journal = dispatcher
		health = append(health, handlers.Dependency{Name: "mongo", Check: handlers.MongoCheck(db)})
	}

	state := session.Guard.Verify(ctx)
	log.Info().Str("state", state.String()).Msg("stored session verified")

	productGateway := backend.NewProductGateway(session.Backend)
	userGateway := backend.NewUserGateway(session.Backend)

	products := service.NewProductController(productGateway, session.Guard, journal, logger.For("products"))
	users := service.NewController(service.UserSpec(), ports.ResourceGateway[domain.User](userGateway), session.Guard, journal, logger.For("users"))
	dashboard := service.NewDashboardService(productGateway, userGateway, journal, logger.For("dashboard"))

	e := api.NewRouter(api.Dependencies{
		Session:        session.Guard,
		Products:       products,
		Users:          users,
		Dashboard:      dashboard,
		Health:         health,
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            logger.For("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
