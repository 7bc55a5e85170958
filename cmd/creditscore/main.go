package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/CreditScore/internal/api"
	"github.com/MikeSquared-Agency/CreditScore/internal/assessment"
	"github.com/MikeSquared-Agency/CreditScore/internal/config"
	"github.com/MikeSquared-Agency/CreditScore/internal/hermes"
	"github.com/MikeSquared-Agency/CreditScore/internal/metrics"
	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	if cfg.Database.Migrations != "" {
		if err := store.RunMigrations(cfg.Database.URL, cfg.Database.Migrations); err != nil {
			logger.Warn("migration warning", "error", err)
		}
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	if err := scoring.Ceilings().Validate(); err != nil {
		logger.Error("invalid scoring ceilings", "error", err)
		os.Exit(1)
	}
	engine := scoring.NewEngine(logger)
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	svc := assessment.NewService(db, hermesClient, engine, recorder, logger)

	// Intake
	intake := assessment.NewIntake(svc, db, hermesClient, cfg.StatsInterval(), logger)
	if err := intake.SetupSubscriptions(ctx); err != nil {
		logger.Warn("failed to subscribe to assessment requests", "error", err)
	}
	intake.Start(ctx)
	defer intake.Stop()
	logger.Info("intake started", "stats_interval", cfg.StatsInterval())

	// API server
	router := api.NewRouter(svc, db, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter(prometheus.DefaultGatherer)
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
