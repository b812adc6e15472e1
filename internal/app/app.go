package app

import (
	"go-vms/internal/config"
	"go-vms/internal/notification"
	"go-vms/internal/record"
	"go-vms/internal/shared/connection"
	"go-vms/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the API's infrastructure and mounts every route on
// router. The returned cleanup drains pending notifications and closes
// connections; call it after the HTTP server has stopped.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app.api")

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
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&record.Record{}); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("database schema migrated")

	var rdb *redis.Client
	if cfg.Redis != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, 5)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set; intake requests are not de-duplicated")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	dispatcher, closeDispatcher, err := newDispatcher(cfg, logger)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	notifier := notification.NewAsync(dispatcher, m, logger)

	if err := registerModules(router, moduleDeps{
		cfg:      cfg,
		sqlDB:    sqlDB,
		gormDB:   gormDB,
		rdb:      rdb,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}); err != nil {
		closeDispatcher()
		sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		notifier.Wait()
		closeDispatcher()
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
		logger.Info("api resources released")
	}
	return cleanup, nil
}
