package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadcapture_backend/internal/bus"
	"leadcapture_backend/internal/events"
	eventsrepo "leadcapture_backend/internal/events/repository"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/http/router"
	"leadcapture_backend/internal/leads"
	"leadcapture_backend/internal/printers"
	"leadcapture_backend/internal/printjobs"
	"leadcapture_backend/internal/printjobs/queue"
	printjobsrepo "leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/internal/storage"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/db"
	"leadcapture_backend/platform/logger"
	"leadcapture_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if !cfg.IsMinIOEnabled() {
		log.Error("object storage is not configured")
		panic("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required")
	}

	storageClient, err := storage.New(cfg)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err)
		panic("failed to initialize object storage: " + err.Error())
	}
	if err := withRetry(ctx, log, "storage buckets", 5, 2*time.Second, func() error {
		return storageClient.EnsureBuckets(ctx)
	}); err != nil {
		log.Error("failed to ensure storage buckets exist", "error", err)
		panic("failed to ensure storage buckets exist: " + err.Error())
	}
	log.Info("object storage ready")

	eventBus := bus.NewInMemoryBus(log)
	val := validator.New()

	enqueuer, closeQueue := initTicketQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	eventsRepo := eventsrepo.New(pool)
	printJobsRepo := printjobsrepo.New(pool)

	bannerStore := storage.NewBannerStore(storageClient)
	exportStore := storage.NewExportStore(storageClient)

	eventsModule := events.NewModule(pool, bannerStore, cfg, val)
	leadsModule := leads.NewModule(pool, eventsRepo, exportStore, eventBus, val)
	printersModule := printers.NewModule(pool, eventsRepo, printJobsRepo, val)

	if enqueuer != nil {
		dispatcher := printjobs.NewDispatcher(printersModule.Repository(), printJobsRepo, enqueuer, log)
		dispatcher.Subscribe(eventBus)
	} else {
		log.Warn("ticket queue disabled; registered leads will not produce print jobs")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			eventsModule,
			leadsModule,
			printersModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initTicketQueue(cfg config.QueueConfig, log *logger.Logger) (queue.TicketEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; ticket printing disabled")
		return nil, nil
	}

	client, err := queue.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize ticket queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
