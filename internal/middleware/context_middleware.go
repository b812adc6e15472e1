package middleware

import (
	"time"

	"go-vms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context and
// logs one access line per request. Run it after RequestID; the user id is
// only known on routes behind AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetString("request_id")
		if rid == "" {
			rid = contextutil.GetRequestID(c.Request.Context())
		}

		reqLogger := logger.With(zap.String("request_id", rid))

		ctx := c.Request.Context()
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("user_id", c.GetString(ContextUserID)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// UserContext copies the authenticated user into the request context.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(ContextUserEmail)
		ctx := contextutil.WithUserID(c.Request.Context(), uid)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, nil).With(zap.String("user_id", uid)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
