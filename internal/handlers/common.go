package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/services"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

// respondDenied distinguishes the two permission failure modes: anonymous
// requests get a 401 challenge, authenticated but unprivileged ones get 403.
func respondDenied(c *gin.Context, principal *models.User) {
	if principal == nil {
		utils.UnauthorizedResponse(c)
		return
	}
	utils.ForbiddenResponse(c)
}

// respondServiceError maps the typed service errors onto status codes;
// anything unrecognized is a 500 and gets logged.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	switch err {
	case services.ErrRideNotFound:
		utils.NotFoundResponse(c, "ride")
	case services.ErrUserNotFound:
		utils.NotFoundResponse(c, "user")
	case services.ErrRideEventNotFound:
		utils.NotFoundResponse(c, "ride event")
	case services.ErrEmailTaken:
		utils.ConflictResponse(c, err.Error())
	default:
		log.WithError(err).Error("Request failed")
		utils.InternalServerErrorResponse(c)
	}
}
