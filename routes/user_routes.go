package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/handlers"
)

// SetupUserRoutes sets up user management routes. Registration is open;
// everything else is gated by the permission policy inside the handlers.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.GET("", userHandler.List)
		users.GET("/drivers", userHandler.ListDrivers)
		users.GET("/riders", userHandler.ListRiders)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}
}
