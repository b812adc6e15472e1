package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the self-service permission endpoints. auth must
// populate the "role" context key.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth...)
	{
		group.GET("/me", handler.Me)
		group.POST("/enforce", handler.Enforce)
	}
}
