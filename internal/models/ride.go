package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusEnRoute   RideStatus = "en-route"
	RideStatusPickup    RideStatus = "pickup"
	RideStatusDropoff   RideStatus = "dropoff"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// ValidRideStatuses is the full status enum. The engine validates against it
// but does not enforce a transition graph; the write path may set any value.
var ValidRideStatuses = []RideStatus{
	RideStatusRequested,
	RideStatusAccepted,
	RideStatusEnRoute,
	RideStatusPickup,
	RideStatusDropoff,
	RideStatusCompleted,
	RideStatusCancelled,
}

func IsValidRideStatus(s RideStatus) bool {
	for _, status := range ValidRideStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Ride struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Status           RideStatus          `json:"status" bson:"status" validate:"required"`
	RiderID          primitive.ObjectID  `json:"rider_id" bson:"rider_id" validate:"required"`
	DriverID         *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	PickupLatitude   float64             `json:"pickup_latitude" bson:"pickup_latitude" validate:"min=-90,max=90"`
	PickupLongitude  float64             `json:"pickup_longitude" bson:"pickup_longitude" validate:"min=-180,max=180"`
	DropoffLatitude  float64             `json:"dropoff_latitude" bson:"dropoff_latitude" validate:"min=-90,max=90"`
	DropoffLongitude float64             `json:"dropoff_longitude" bson:"dropoff_longitude" validate:"min=-180,max=180"`
	PickupTime       *time.Time          `json:"pickup_time" bson:"pickup_time"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
}

// AccessibleBy reports whether the given principal owns this ride for
// object-scoped permission checks: riders match the rider reference, drivers
// match the driver reference once assigned. Admins are handled by the policy
// before this is consulted.
func (r *Ride) AccessibleBy(u *User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleRider:
		return r.RiderID == u.ID
	case RoleDriver:
		return r.DriverID != nil && *r.DriverID == u.ID
	default:
		return false
	}
}
