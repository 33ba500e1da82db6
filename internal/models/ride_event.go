package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideEvent is append-only from the engine's perspective: it is created by
// the write path (status changes, admin notes) and only ever read here.
type RideEvent struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RideID      primitive.ObjectID `json:"ride_id" bson:"ride_id" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required,max=255"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
