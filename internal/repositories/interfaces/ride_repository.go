package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
)

// RideRepository is the candidate source for the listing engine. The
// compiled RideFilter is the only query input it accepts; it never sees raw
// request parameters.
type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Count returns the total number of rides matching the filter,
	// independent of pagination.
	Count(ctx context.Context, filter *models.RideFilter) (int64, error)

	// FindPage returns one page ordered at the source: pickup_time
	// ascending when requested, created_at descending otherwise.
	FindPage(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error)

	// FindAll materializes every matching ride for the in-memory distance
	// sort. Callers must have checked the cardinality cap first.
	FindAll(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error)
}
