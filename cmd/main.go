package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home_inventory/internal/config"
	"home_inventory/internal/handlers"
	"home_inventory/internal/logger"
	"home_inventory/internal/repository"
	"home_inventory/internal/server"
	"home_inventory/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The signing secret is load-bearing; refusing to start beats
		// issuing tokens nobody can trust.
		bootLog := logger.Get(logger.InfoLevel)
		if errors.Is(err, config.ErrMissingSecret) {
			bootLog.Fatalw("refusing to start without signing secret", "err", err)
		}
		bootLog.Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	db, err := openDB(cfg)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, service.Config{
		TokenSecret: cfg.TokenSecret,
		TokenTTL:    cfg.TokenTTL,
	})
	apiHandler := handlers.NewHandler(services, handlers.CookieOptions{
		Secure:    cfg.CookieSecure,
		CrossSite: cfg.CookieCrossSite,
	}, log)

	// start HTTP server
	srv := &server.Server{}
	go func() {
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("server started", "port", cfg.Port, "token_ttl", cfg.TokenTTL)

	waitForShutdown(srv, log)
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	return repository.InitDB(cfg.DBPath)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
