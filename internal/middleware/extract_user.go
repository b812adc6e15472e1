package middleware

import (
	"github.com/gin-gonic/gin"
)

// ExtractUserID re-publishes user_id as user_id_validated once it is known
// to be a non-empty string.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get(ContextUserID)
		if !exists {
			abortWith(ctx, ErrMissingIdentity)
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			abortWith(ctx, ErrMissingIdentity)
			return
		}

		ctx.Set("user_id_validated", userIDStr)
		ctx.Next()
	}
}
