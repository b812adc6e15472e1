package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-vms/internal/config"
	"go-vms/internal/middleware"
	"go-vms/internal/rbac"
	"go-vms/internal/rbac/infra"
	"go-vms/internal/record"
	"go-vms/internal/shared/metrics"
	"go-vms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type moduleDeps struct {
	cfg      config.Config
	sqlDB    *sql.DB
	gormDB   *gorm.DB
	rdb      *redis.Client
	notifier record.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, deps.logger)
	if err != nil {
		return err
	}

	// --- Records ---
	recordRepo := record.NewRepository(deps.gormDB)
	recordService := record.NewService(deps.sqlDB, recordRepo, deps.notifier, deps.metrics, deps.logger)

	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(deps.logger),
		middleware.CORS(deps.cfg.CORSOrigins),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", healthHandler(deps.sqlDB))

	v1 := api.Group("/v1")
	v1.Use(middleware.RateLimitByIP(20, 40))

	routeDeps := record.RouteDeps{
		RBAC:           rbacService,
		JWTSecret:      deps.cfg.JWTSecret,
		IdempotencyTTL: 24 * time.Hour,
		Logger:         deps.logger,
	}
	if deps.rdb != nil {
		routeDeps.Redis = deps.rdb
	}

	for _, kind := range []record.Kind{record.KindVisitor, record.KindGuest, record.KindAdhoc} {
		record.RegisterRoutes(v1, record.NewHandler(kind, recordService, deps.logger), routeDeps)
	}

	rbac.RegisterRoutes(v1, rbac.NewHandler(rbacService, deps.logger), middleware.AuthMiddleware(deps.cfg.JWTSecret))

	return nil
}

func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
