package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

type AuthService interface {
	// Login verifies credentials and issues a token pair. The same error is
	// returned for an unknown email and a wrong password.
	Login(ctx context.Context, email, password string) (*models.User, *utils.TokenPair, error)
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *utils.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			s.logger.LogSecurityEvent("login_failed", "warning", map[string]interface{}{
				"email":  email,
				"reason": "unknown email",
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.LogSecurityEvent("login_failed", "warning", map[string]interface{}{
			"email":  email,
			"reason": "wrong password",
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	s.logger.LogUserAction(user.ID, "login", map[string]interface{}{
		"role": user.Role,
	})

	return user, tokens, nil
}
