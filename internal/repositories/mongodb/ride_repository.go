package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/services"
	"github.com/jerome2525/wingz-api/internal/utils"
)

type rideRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRideRepository(db *mongo.Database, cache services.CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	now := time.Now()
	ride.CreatedAt = now
	ride.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	r.cacheRide(ctx, ride)

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if ride, err := r.cache.GetCachedRide(ctx, id); err == nil && ride != nil {
		return ride, nil
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	r.cacheRide(ctx, &ride)

	return &ride, nil
}

func (r *rideRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update ride: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrRideNotFound
	}

	r.cache.InvalidateRide(ctx, id)

	return nil
}

func (r *rideRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrRideNotFound
	}

	r.cache.InvalidateRide(ctx, id)

	return nil
}

func (r *rideRepository) Count(ctx context.Context, filter *models.RideFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, buildRideQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count rides: %w", err)
	}
	return count, nil
}

func (r *rideRepository) FindPage(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error) {
	opts := options.Find().
		SetSort(sourceSort(filter)).
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize))

	return r.find(ctx, buildRideQuery(filter), opts)
}

func (r *rideRepository) FindAll(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error) {
	return r.find(ctx, buildRideQuery(filter), options.Find())
}

func (r *rideRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Ride, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, nil
}

// sourceSort maps an explicit pickup_time order onto the collection; every
// other case, including distance sorting, reads newest first. Distance order
// is computed in memory by the planner, not here.
func sourceSort(filter *models.RideFilter) bson.D {
	if filter.SortBy == models.RideSortPickupTime {
		return bson.D{{Key: "pickup_time", Value: 1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}

func buildRideQuery(filter *models.RideFilter) bson.M {
	query := bson.M{}

	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.RiderIDs != nil {
		query["rider_id"] = bson.M{"$in": filter.RiderIDs}
	}
	if filter.DriverIDs != nil {
		query["driver_id"] = bson.M{"$in": filter.DriverIDs}
	}

	if filter.DateFrom != nil || filter.DateTo != nil {
		createdAt := bson.M{}
		if filter.DateFrom != nil {
			createdAt["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			createdAt["$lte"] = *filter.DateTo
		}
		query["created_at"] = createdAt
	}

	if filter.PickupTimeFrom != nil || filter.PickupTimeTo != nil {
		pickupTime := bson.M{}
		if filter.PickupTimeFrom != nil {
			pickupTime["$gte"] = *filter.PickupTimeFrom
		}
		if filter.PickupTimeTo != nil {
			pickupTime["$lte"] = *filter.PickupTimeTo
		}
		query["pickup_time"] = pickupTime
	}

	return query
}

func (r *rideRepository) cacheRide(ctx context.Context, ride *models.Ride) {
	r.cache.CacheRide(ctx, ride, utils.CacheRideTTL)
}
