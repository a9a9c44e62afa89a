package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgkafka "github.com/makrochain/loan-service/pkg/kafka"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
	"github.com/makrochain/loan-service/pkg/observability"
	pkgpostgres "github.com/makrochain/loan-service/pkg/postgres"

	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/infrastructure/config"
	"github.com/makrochain/loan-service/internal/infrastructure/messaging"
	pgRepo "github.com/makrochain/loan-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/makrochain/loan-service/internal/presentation/grpc"
	"github.com/makrochain/loan-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting loan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics exporter and /metrics endpoint.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:        cfg.DB.Host,
		Port:        cfg.DB.Port,
		User:        cfg.DB.User,
		Password:    cfg.DB.Password,
		Database:    cfg.DB.Name,
		SSLMode:     cfg.DB.SSLMode,
		LockTimeout: cfg.LockTimeout,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	repaymentRepo := pgRepo.NewRepaymentRepo(pool)
	harvestRepo := pgRepo.NewHarvestRepo(pool)
	tokenRepo := pgRepo.NewTokenRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
		TLS:     cfg.Kafka.TLS,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	locks := keyedmutex.New(cfg.LockTimeout)

	// Wire use cases.
	createLoanUC := usecase.NewCreateLoanUseCase(loanRepo, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, repaymentRepo)
	searchLoansUC := usecase.NewSearchLoansUseCase(loanRepo)
	updateStatusUC := usecase.NewUpdateLoanStatusUseCase(loanRepo, publisher, locks)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(loanRepo, publisher, locks)
	overdueSweepUC := usecase.NewOverdueSweepUseCase(loanRepo, publisher, locks, logger, cfg.SweepBatchSize)
	harvestUC := usecase.NewHarvestLifecycleUseCase(harvestRepo, tokenRepo, publisher, locks)
	tokenUC := usecase.NewTokenLifecycleUseCase(tokenRepo, publisher, locks)

	// gRPC server.
	loanHandler := grpcPresentation.NewLoanHandler(
		createLoanUC, getLoanUC, searchLoansUC, updateStatusUC, recordPaymentUC, overdueSweepUC)
	marketplaceHandler := grpcPresentation.NewMarketplaceHandler(harvestUC, tokenUC)
	grpcServer := grpcPresentation.NewServer(loanHandler, marketplaceHandler, logger)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, func(ctx context.Context) error {
		return pkgpostgres.HealthCheck(ctx, pool)
	})
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Periodic overdue sweep. Interval zero disables it; the sweep is also
	// reachable on demand via the RunOverdueSweep RPC.
	if interval := getEnvDuration("SWEEP_INTERVAL", time.Hour); interval > 0 {
		go runSweepLoop(ctx, overdueSweepUC, interval, logger)
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-service stopped")
}

// runSweepLoop runs the overdue sweep on a fixed interval until ctx is done.
func runSweepLoop(ctx context.Context, sweep *usecase.OverdueSweepUseCase, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := sweep.Execute(ctx)
			if err != nil {
				logger.Error("overdue sweep failed", "error", err)
				continue
			}
			logger.Info("overdue sweep completed",
				"scanned", result.Scanned,
				"transitioned", result.Transitioned,
				"failed", result.Failed,
			)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
