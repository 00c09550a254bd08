package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promokit/wheel-service/internal/config"
	"github.com/promokit/wheel-service/internal/database"
	"github.com/promokit/wheel-service/internal/database/memory"
	"github.com/promokit/wheel-service/internal/database/postgres"
	"github.com/promokit/wheel-service/internal/domain"
	"github.com/promokit/wheel-service/internal/event"
	"github.com/promokit/wheel-service/internal/handler"
	"github.com/promokit/wheel-service/internal/logger"
	"github.com/promokit/wheel-service/internal/repository"
	"github.com/promokit/wheel-service/internal/scheduler"
	"github.com/promokit/wheel-service/internal/server"
	"github.com/promokit/wheel-service/internal/wheel"
	"github.com/promokit/wheel-service/internal/worker"
)

const (
	shutdownTimeout = 10 * time.Second

	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute

	deadLetterPath       = "wheel-events.deadletter.jsonl"
	cleanupInterval      = time.Hour
	cleanupWorkerCount   = 1
	cleanupQueueCapacity = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, health, cleanup, err := buildHistoryStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize award store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer cleanup()

	selector, err := wheel.NewSelector(domain.WheelOutcomes)
	if err != nil {
		slog.Error("Invalid wheel outcome table", "error", err)
		os.Exit(1)
	}

	// Event pipeline: award lifecycle events go through the resilient
	// publisher so downstream consumers never stall a spin
	bus := event.NewMemoryBus()
	subscribeAnalyticsLog(bus)

	publisher, err := event.NewResilientPublisher(bus, event.RetryMaxAttempts,
		event.RetryInitialDelaySeconds*time.Second, deadLetterPath)
	if err != nil {
		slog.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}

	wheelService := wheel.NewService(repo, selector, cfg.Wheel,
		wheel.NewSystemClock(), wheel.NewSystemRandom(), publisher)

	// Background cleanup of long-expired awards
	pool := worker.NewPool(cleanupWorkerCount, cleanupQueueCapacity)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cleanupInterval, worker.NewAwardCleanupJob(repo, worker.DefaultAwardRetention))

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, health, wheelService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	sched.Stop()
	pool.Stop()

	if err := publisher.Shutdown(shutdownCtx); err != nil {
		slog.Error("Event publisher shutdown failed", "error", err)
	}

	slog.Info("Server stopped")
}

// buildHistoryStore wires the configured award store backend and its
// readiness check. The returned cleanup closes any held connections.
func buildHistoryStore(ctx context.Context, cfg *config.Config) (repository.History, handler.HealthChecker, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		slog.Warn("Using in-memory award store, awards will not survive restarts")
		checker := handler.HealthCheckerFunc(func(ctx context.Context) error { return nil })
		return memory.NewHistoryRepository(), checker, func() {}, nil

	default:
		pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checker := handler.HealthCheckerFunc(func(ctx context.Context) error { return pool.Ping(ctx) })
		return postgres.NewHistoryRepository(pool), checker, pool.Close, nil
	}
}

// subscribeAnalyticsLog emits one structured log line per award lifecycle
// event; the marketing side tails these for campaign reporting
func subscribeAnalyticsLog(bus event.Bus) {
	bus.Subscribe(event.AwardIssued, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.AwardIssuedPayloadV1](e.Payload)
		if err != nil {
			return err
		}
		slog.Info("Wheel award issued",
			logger.AttrKeyRequestID, e.GetMetadataValue(event.MetadataKeyRequestID),
			"award_id", p.AwardID,
			"session_id", p.SessionID,
			"section", p.Section,
			"discount_percent", p.DiscountPercent)
		return nil
	})

	bus.Subscribe(event.AwardRedeemed, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.AwardRedeemedPayloadV1](e.Payload)
		if err != nil {
			return err
		}
		slog.Info("Wheel award redeemed",
			logger.AttrKeyRequestID, e.GetMetadataValue(event.MetadataKeyRequestID),
			"award_id", p.AwardID,
			"session_id", p.SessionID,
			"discount_code", p.DiscountCode,
			"discount_percent", p.DiscountPercent)
		return nil
	})

	bus.Subscribe(event.SpinRejected, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.SpinRejectedPayloadV1](e.Payload)
		if err != nil {
			return err
		}
		slog.Info("Wheel spin rejected",
			logger.AttrKeyRequestID, e.GetMetadataValue(event.MetadataKeyRequestID),
			"session_id", p.SessionID,
			"reason", p.Reason)
		return nil
	})
}
