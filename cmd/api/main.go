package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskforge/task-management-api/internal/api"
	"github.com/taskforge/task-management-api/internal/infrastructure/config"
	"github.com/taskforge/task-management-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/taskforge/task-management-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-management-api/internal/infrastructure/oauth"
	"github.com/taskforge/task-management-api/pkg/logger"

	_ "github.com/taskforge/task-management-api/docs"
)

const startupTimeout = 10 * time.Second

// @title           Task Management API
// @version         1.0
// @description     Multi-tenant task management API with JWT authentication, role-based access control and Google federated sign-in.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Env: cfg.Env})

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := postgres.Connect(startupCtx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	rdb, err := redisinfra.Connect(startupCtx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	google, err := oauth.NewGoogleProvider(startupCtx, oauth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configure google provider")
	}

	e := api.NewRouter(db, rdb, google, cfg, log)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
