package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ordersight/orders-reporter/internal/config"
	"github.com/ordersight/orders-reporter/internal/database"
	"github.com/ordersight/orders-reporter/internal/publish"
	"github.com/ordersight/orders-reporter/internal/scheduler"
	"github.com/ordersight/orders-reporter/internal/store"
	"github.com/ordersight/orders-reporter/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty: environment variables only)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting orders-reporter",
		"version", version.Version,
		"commit", version.Commit,
	)

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"project", cfg.Project.ID,
		"interval", cfg.Scheduler.Interval,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Monitoring client authenticates via ambient credentials.
	metricClient, err := monitoring.NewMetricClient(ctx)
	if err != nil {
		logger.Error("failed to create monitoring client", "error", err)
		os.Exit(1)
	}
	defer metricClient.Close()

	orders := store.New(pool, logger)
	publisher := publish.New(metricClient, cfg.Project.ID, publish.WithLogger(logger))

	sched := scheduler.New(
		scheduler.Config{Interval: cfg.Scheduler.Interval},
		orders,
		publisher,
		logger,
	)

	// Start health/metrics server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: createHealthHandler(pool, cfg.Metrics.Path),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Metrics.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	logger.Info("orders-reporter running",
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Metrics.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	sched.Stop(shutdownCtx)
	healthServer.Shutdown(shutdownCtx)

	logger.Info("orders-reporter stopped")
}

// loadConfig reads a YAML config when a path is given, otherwise builds
// configuration from the environment alone.
func loadConfig(path string) (*config.ReporterConfig, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.LoadAndValidate(path)
}

// createHealthHandler creates the HTTP handler for health checks and
// Prometheus metrics.
func createHealthHandler(pool *pgxpool.Pool, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string                 `json:"status"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]interface{}),
		}

		// Check database
		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		// Set response
		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
