package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/handlers"
)

// SetupRideEventRoutes sets up the ride event routes.
func SetupRideEventRoutes(r *gin.RouterGroup, rideEventHandler *handlers.RideEventHandler) {
	events := r.Group("/ride-events")
	{
		events.GET("", rideEventHandler.List)
		events.POST("", rideEventHandler.Create)
	}
}
