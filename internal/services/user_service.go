package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, req *validators.UserCreateRequest) (*models.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context, role *models.Role, params *utils.PaginationParams) ([]*models.User, int64, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, req *validators.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   log,
	}
}

// Register creates a user account. Registration is open: the caller picks
// any of the valid roles, matching the onboarding flow where riders and
// drivers sign themselves up.
func (s *userService) Register(ctx context.Context, req *validators.UserCreateRequest) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Role:        models.Role(req.Role),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(user.ID, "user_registered", map[string]interface{}{
		"role": user.Role,
	})

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, role *models.Role, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, role, params)
}

func (s *userService) UpdateUser(ctx context.Context, id primitive.ObjectID, req *validators.UserUpdateRequest) (*models.User, error) {
	updates := map[string]interface{}{}

	if req.Role != "" {
		updates["role"] = models.Role(req.Role)
	}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Email != "" {
		if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		updates["email"] = req.Email
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.LogUserAction(id, "user_deleted", nil)

	return nil
}
