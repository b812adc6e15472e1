package record

import (
	"time"

	"go-vms/internal/middleware"
	"go-vms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RouteDeps struct {
	RBAC           middleware.RBACService
	Redis          redis.Cmdable
	JWTSecret      string
	IdempotencyTTL time.Duration
	Logger         *zap.Logger
}

func pathFor(kind Kind) string {
	switch kind {
	case KindGuest:
		return "/guests"
	case KindAdhoc:
		return "/adhoc"
	default:
		return "/visitors"
	}
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, deps RouteDeps) {
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	records := r.Group(pathFor(handler.kind))
	records.Use(middleware.AuthMiddleware(deps.JWTSecret))
	records.Use(middleware.ExtractUserID())
	records.Use(middleware.UserContext())
	{
		records.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionRead),
			handler.List,
		)

		records.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionRead),
			handler.GetByID,
		)

		create := []gin.HandlerFunc{
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionCreate),
		}
		if deps.Redis != nil {
			create = append(create, middleware.Idempotency(deps.Redis, ttl, deps.Logger))
		}
		records.POST("", append(create, handler.Create)...)

		records.PUT("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionUpdate),
			handler.Update,
		)

		records.PUT("/:id/remove-ui",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionRemove),
			handler.Remove,
		)

		if handler.kind == KindGuest {
			records.DELETE("/:id",
				middleware.RateLimitByUser(0.5, 2),
				middleware.RBACAuthorize(deps.RBAC, rbac.ResourceRecord, rbac.ActionDelete),
				handler.Delete,
			)
		}
	}
}
