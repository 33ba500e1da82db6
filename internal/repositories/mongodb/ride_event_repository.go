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
	"github.com/jerome2525/wingz-api/internal/utils"
)

type rideEventRepository struct {
	collection *mongo.Collection
}

func NewRideEventRepository(db *mongo.Database) interfaces.RideEventRepository {
	return &rideEventRepository{
		collection: db.Collection("ride_events"),
	}
}

func (r *rideEventRepository) Create(ctx context.Context, event *models.RideEvent) error {
	event.ID = primitive.NewObjectID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create ride event: %w", err)
	}

	return nil
}

func (r *rideEventRepository) GetByRideIDs(ctx context.Context, rideIDs []primitive.ObjectID) (map[primitive.ObjectID][]*models.RideEvent, error) {
	events := make(map[primitive.ObjectID][]*models.RideEvent, len(rideIDs))
	if len(rideIDs) == 0 {
		return events, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"ride_id": bson.M{"$in": rideIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride events: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var event models.RideEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode ride event: %w", err)
		}
		events[event.RideID] = append(events[event.RideID], &event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ride events: %w", err)
	}

	return events, nil
}

func (r *rideEventRepository) List(ctx context.Context, rideID *primitive.ObjectID, params *utils.PaginationParams) ([]*models.RideEvent, int64, error) {
	query := bson.M{}
	if rideID != nil {
		query["ride_id"] = *rideID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ride events: %w", err)
	}

	opts := params.FindOptions(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ride events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*models.RideEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ride events: %w", err)
	}

	return events, total, nil
}

func (r *rideEventRepository) DeleteByRideID(ctx context.Context, rideID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"ride_id": rideID})
	if err != nil {
		return fmt.Errorf("failed to delete ride events: %w", err)
	}
	return nil
}
