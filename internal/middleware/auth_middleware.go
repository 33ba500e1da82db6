package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

const principalKey = "principal"

// PrincipalResolver parses the bearer token when one is present and attaches
// the authenticated user to the request context. A missing or invalid token
// is not fatal here: the handlers' permission checks decide between 401 and
// 403, so anonymous requests flow through with no principal set.
func PrincipalResolver(userRepo interfaces.UserRepository, jwtSecret string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			log.LogSecurityEvent("invalid_token", "warning", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// SetPrincipal attaches a user to the request context. Exposed for handler
// tests; request handling goes through PrincipalResolver.
func SetPrincipal(c *gin.Context, user *models.User) {
	c.Set(principalKey, user)
}

// GetPrincipal returns the authenticated user for this request, or nil for
// anonymous requests.
func GetPrincipal(c *gin.Context) *models.User {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
