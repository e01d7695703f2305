// Command server runs the event manager HTTP API.
//
// @title Event Manager API
// @version 1.0
// @description Venue booking and capacity-bounded event registration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventmanager/config"
	_ "eventmanager/docs"
	"eventmanager/internal/adapters/auth"
	httpdelivery "eventmanager/internal/delivery/http"
	"eventmanager/internal/repository"
	"eventmanager/internal/seed"
	"eventmanager/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("close store", "error", err)
		}
	}()
	logger.Info("store opened", "driver", cfg.StoreDriver)

	if cfg.SeedDemoData {
		if _, err := seed.Run(ctx, logger, repos); err != nil {
			return err
		}
	}

	timeout := cfg.RequestTimeout
	checker := services.NewAvailabilityChecker(repos.Events)
	ledger := services.NewRegistrationLedger(repos.Tx, repos.Events, repos.Registrations, logger, timeout)
	users := services.NewUserService(repos.Users, logger, timeout)

	handler := httpdelivery.NewRouter(logger, httpdelivery.Services{
		Events:    services.NewEventService(repos.Tx, repos.Events, repos.Venues, repos.Users, ledger, checker, logger, timeout),
		Attendees: services.NewAttendeeService(repos.Events, ledger, timeout),
		Venues:    services.NewVenueService(repos.Venues, checker, logger, timeout),
		Users:     users,
		Stats:     services.NewStatsService(repos.Events, repos.Users, repos.Venues, repos.Registrations, timeout),
		Verifier:  auth.NewJWT(cfg.JWTSecret),
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
