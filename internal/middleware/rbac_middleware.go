package middleware

import (
	"net/http"

	"go-vms/internal/rbac"
	"go-vms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService is anything that can answer a casbin-style permission check.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":    false,
				"error": gin.H{"code": apperror.CodeInternalError, "message": "permission check failed"},
			})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ok": false,
				"error": gin.H{
					"code":     apperror.CodeForbidden,
					"message":  apperror.ErrForbidden.Message,
					"required": resource + ":" + action,
				},
			})
			return
		}
		c.Next()
	}
}
