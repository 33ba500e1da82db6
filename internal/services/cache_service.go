package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/pkg/cache"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

// CacheService is the repository-facing cache surface. Misses and backend
// failures are indistinguishable to callers: both return (nil, false)-style
// results so the store stays authoritative.
type CacheService interface {
	CacheRide(ctx context.Context, ride *models.Ride, expiration time.Duration) error
	GetCachedRide(ctx context.Context, rideID primitive.ObjectID) (*models.Ride, error)
	InvalidateRide(ctx context.Context, rideID primitive.ObjectID) error

	CacheUser(ctx context.Context, user *models.User, expiration time.Duration) error
	GetCachedUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	InvalidateUser(ctx context.Context, userID primitive.ObjectID) error
}

type cacheService struct {
	redis  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redis *cache.RedisCache, log *logger.Logger) CacheService {
	return &cacheService{
		redis:  redis,
		logger: log,
	}
}

func (s *cacheService) CacheRide(ctx context.Context, ride *models.Ride, expiration time.Duration) error {
	if err := s.redis.Set(ctx, utils.CacheKeyRide+ride.ID.Hex(), ride, expiration); err != nil {
		s.logger.WithError(err).WithRideID(ride.ID).Warn("Failed to cache ride")
		return err
	}
	return nil
}

func (s *cacheService) GetCachedRide(ctx context.Context, rideID primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	if err := s.redis.Get(ctx, utils.CacheKeyRide+rideID.Hex(), &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

func (s *cacheService) InvalidateRide(ctx context.Context, rideID primitive.ObjectID) error {
	return s.redis.Delete(ctx, utils.CacheKeyRide+rideID.Hex())
}

func (s *cacheService) CacheUser(ctx context.Context, user *models.User, expiration time.Duration) error {
	return s.redis.Set(ctx, utils.CacheKeyUser+user.ID.Hex(), user, expiration)
}

func (s *cacheService) GetCachedUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.redis.Get(ctx, utils.CacheKeyUser+userID.Hex(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *cacheService) InvalidateUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.redis.Delete(ctx, utils.CacheKeyUser+userID.Hex())
}
