package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/adapters/blendapi"
	"github.com/ewilliams-labs/blendvoice/internal/adapters/redisstore"
	"github.com/ewilliams-labs/blendvoice/internal/adapters/rest"
	"github.com/ewilliams-labs/blendvoice/internal/adapters/sqlite"
	"github.com/ewilliams-labs/blendvoice/internal/config"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
	"github.com/ewilliams-labs/blendvoice/internal/core/services"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
	"github.com/ewilliams-labs/blendvoice/internal/worker"
)

func newServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the voice turn HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default ./blendvoice.yaml)")
	return cmd
}

func serve(ctx context.Context, configFile string) error {
	envErr := godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if envErr != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	repo, closeRepo, err := openRepository(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()
	logger.Info("user records ready", zap.String("driver", cfg.Storage.Driver))

	sinks := telemetry.Multi{telemetry.NewLogSink(logger)}
	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := telemetry.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		sinks = append(sinks, metrics)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	pool := worker.NewPool(sinks, logger, cfg.Telemetry.Workers, cfg.Telemetry.QueueSize)
	pool.Start()
	defer pool.Stop()

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	music := blendapi.NewClient(httpClient, cfg.API.BaseURL)
	skill := services.NewSkill(music, repo, logger)
	handler := rest.NewHandler(skill, pool, metricsHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()
	logger.Info("blendvoice listening", zap.String("addr", srv.Addr), zap.String("api", cfg.API.BaseURL))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
	return nil
}

// openRepository builds the record store named by cfg.Driver.
func openRepository(cfg config.StorageConfig) (ports.ProfileRepository, func() error, error) {
	switch cfg.Driver {
	case "sqlite":
		a, err := sqlite.NewAdapter(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return a, a.Close, nil
	case "redis":
		s, err := redisstore.NewStore(redisstore.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.TTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
}
