package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/services"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

// Login exchanges email/password for a token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateLogin(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
			return
		}
		h.logger.WithError(err).Error("Login failed")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}
