package validators

import (
	"time"
)

type RideCreateRequest struct {
	RiderID          string     `json:"rider_id" validate:"required,object_id"`
	DriverID         string     `json:"driver_id" validate:"omitempty,object_id"`
	PickupLatitude   float64    `json:"pickup_latitude" validate:"min=-90,max=90"`
	PickupLongitude  float64    `json:"pickup_longitude" validate:"min=-180,max=180"`
	DropoffLatitude  float64    `json:"dropoff_latitude" validate:"min=-90,max=90"`
	DropoffLongitude float64    `json:"dropoff_longitude" validate:"min=-180,max=180"`
	PickupTime       *time.Time `json:"pickup_time"`
}

type RideUpdateRequest struct {
	Status           string     `json:"status" validate:"omitempty,ride_status"`
	DriverID         string     `json:"driver_id" validate:"omitempty,object_id"`
	PickupLatitude   *float64   `json:"pickup_latitude" validate:"omitempty,min=-90,max=90"`
	PickupLongitude  *float64   `json:"pickup_longitude" validate:"omitempty,min=-180,max=180"`
	DropoffLatitude  *float64   `json:"dropoff_latitude" validate:"omitempty,min=-90,max=90"`
	DropoffLongitude *float64   `json:"dropoff_longitude" validate:"omitempty,min=-180,max=180"`
	PickupTime       *time.Time `json:"pickup_time"`
}

type RideEventCreateRequest struct {
	RideID      string `json:"ride_id" validate:"required,object_id"`
	Description string `json:"description" validate:"required,max=255"`
}

func ValidateRideCreate(req *RideCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateRideUpdate(req *RideUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateRideEventCreate(req *RideEventCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
