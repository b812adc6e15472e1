package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-vms/internal/config"
	"go-vms/internal/overstay"
	"go-vms/internal/record"
	"go-vms/internal/shared/connection"
	"go-vms/internal/shared/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RunWorker runs the overstay sweep and the retention purge until SIGINT
// or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	dispatcher, closeDispatcher, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDispatcher()

	m := metrics.New(prometheus.DefaultRegisterer)
	repo := record.NewRepository(gormDB)

	job := overstay.NewJob(repo, dispatcher, logger,
		overstay.WithThreshold(cfg.OverstayThreshold),
		overstay.WithGuests(cfg.OverstayIncludeGuests),
		overstay.WithMetrics(m),
	)
	purger := overstay.NewPurger(repo, m, logger)

	sweeper := overstay.NewScheduler("overstay", cfg.OverstayInterval, overstay.SweepTask(job), logger)
	purge := overstay.NewScheduler("purge", cfg.PurgeInterval, overstay.PurgeTask(purger), logger)

	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker metrics server failed", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper.Start(ctx)
	purge.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	sweeper.Stop()
	purge.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = metricsServer.Shutdown(shutdownCtx)

	return nil
}
