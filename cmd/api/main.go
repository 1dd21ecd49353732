// Package main is the entry point for the Residence Hub API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/residence-hub/backend/config"
	"github.com/residence-hub/backend/internal/infra/cache"
	"github.com/residence-hub/backend/internal/infra/db"
	"github.com/residence-hub/backend/internal/infra/dependency"
	"github.com/residence-hub/backend/internal/infra/logging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.Log)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	slog.Info("Starting Residence Hub API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.New(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		}()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Redis:          redisClient,
		DatabaseHealth: database.HealthCheck,
	})
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if cfg.Email.WorkerEnabled {
		g.Go(func() error {
			injector.EmailWorker.Start(gctx)
			return nil
		})
	}

	if cfg.Reminder.Enabled {
		g.Go(func() error {
			injector.Scheduler.Start(gctx)
			return nil
		})
	} else {
		slog.Info("Reminder scheduler disabled")
	}

	return g.Wait()
}
