package routes

import (
	"projecthub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler group under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Health.RegisterRoutes(api)
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Projects.RegisterRoutes(api)
		appHandlers.Tasks.RegisterRoutes(api)
		appHandlers.Notifications.RegisterRoutes(api)
	}
}
