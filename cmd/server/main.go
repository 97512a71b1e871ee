package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Chirp/internal/api/middleware"
	"Chirp/internal/api/routes"
	"Chirp/internal/config"
	"Chirp/internal/core/engagement"
	"Chirp/internal/core/events"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
	"Chirp/internal/db/memory"
	postgresRepo "Chirp/internal/db/postgres"
	"Chirp/internal/metrics"
	chirpnats "Chirp/internal/nats"
)

const (
	shutdownTimeout = 10 * time.Second
	pingRetries     = 8
)

func main() {
	// A missing .env is fine; the environment wins over it either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventLog, userRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	eventLog = metrics.NewInstrumentedLog(eventLog)

	if cfg.NATSEnabled() {
		js, err := chirpnats.Connect(ctx, cfg.NATSURL, cfg.NATSInit, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := js.Conn().Drain(); err != nil {
				logger.Warn("failed to drain NATS connection", "error", err)
			}
		}()
		eventLog = chirpnats.NewPublishingLog(eventLog, js, logger)
		logger.Info("Publishing events to NATS", "url", cfg.NATSURL)
	}

	// Initialize services
	userService := users.NewUserService(userRepo, nil, logger)
	postService := posts.NewPostService(eventLog, userService, logger)
	engagementService := engagement.NewService(eventLog, postService, userService, logger)

	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow, logger)

	r := routes.NewRouter(routes.Services{
		Posts:      postService,
		Engagement: engagementService,
		Users:      userService,
	}, rateLimiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Chirp AppView starting", "port", cfg.Port, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore returns the event log and user repository selected by STORE
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.Log, users.UserRepository, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on exit")
		return memory.NewEventLog(), memory.NewUserRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// The database may still be starting when the server comes up
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 250 * time.Millisecond
	retry.MaxInterval = 5 * time.Second
	ping := func() error {
		err := db.PingContext(ctx)
		if err != nil {
			logger.Warn("database not ready", "error", err)
		}
		return err
	}
	if err := backoff.Retry(ping, backoff.WithContext(backoff.WithMaxRetries(retry, pingRetries), ctx)); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Connected to AppView database")

	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations completed successfully")

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return postgresRepo.NewEventLog(db), postgresRepo.NewUserRepository(db), closeDB, nil
}
