package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/handlers"
)

// SetupAuthRoutes sets up the authentication routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
}
