package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/handlers"
)

// SetupRideRoutes sets up the ride listing and management routes.
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler) {
	rides := r.Group("/rides")
	{
		rides.GET("", rideHandler.List)
		rides.POST("", rideHandler.Create)
		rides.GET("/:id", rideHandler.Get)
		rides.PUT("/:id", rideHandler.Update)
		rides.DELETE("/:id", rideHandler.Delete)
	}
}
