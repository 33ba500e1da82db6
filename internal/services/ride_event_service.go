package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
)

type RideEventService interface {
	ListEvents(ctx context.Context, rideID *primitive.ObjectID, params *utils.PaginationParams) ([]*models.RideEvent, int64, error)
	CreateEvent(ctx context.Context, req *validators.RideEventCreateRequest) (*models.RideEvent, error)
}

type rideEventService struct {
	rideEventRepo interfaces.RideEventRepository
	rideRepo      interfaces.RideRepository
}

func NewRideEventService(rideEventRepo interfaces.RideEventRepository, rideRepo interfaces.RideRepository) RideEventService {
	return &rideEventService{
		rideEventRepo: rideEventRepo,
		rideRepo:      rideRepo,
	}
}

func (s *rideEventService) ListEvents(ctx context.Context, rideID *primitive.ObjectID, params *utils.PaginationParams) ([]*models.RideEvent, int64, error) {
	return s.rideEventRepo.List(ctx, rideID, params)
}

func (s *rideEventService) CreateEvent(ctx context.Context, req *validators.RideEventCreateRequest) (*models.RideEvent, error) {
	rideID, err := primitive.ObjectIDFromHex(req.RideID)
	if err != nil {
		return nil, err
	}

	// An event must reference an existing ride.
	if _, err := s.rideRepo.GetByID(ctx, rideID); err != nil {
		return nil, err
	}

	event := &models.RideEvent{
		RideID:      rideID,
		Description: req.Description,
	}

	if err := s.rideEventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}
