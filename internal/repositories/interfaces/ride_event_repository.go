package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
)

type RideEventRepository interface {
	Create(ctx context.Context, event *models.RideEvent) error

	// GetByRideIDs bulk-loads the events of every listed ride in a single
	// query, newest first, so per-ride aggregation never refetches.
	GetByRideIDs(ctx context.Context, rideIDs []primitive.ObjectID) (map[primitive.ObjectID][]*models.RideEvent, error)

	List(ctx context.Context, rideID *primitive.ObjectID, params *utils.PaginationParams) ([]*models.RideEvent, int64, error)
	DeleteByRideID(ctx context.Context, rideID primitive.ObjectID) error
}
