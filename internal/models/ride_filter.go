package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideSortField string

const (
	RideSortPickupTime RideSortField = "pickup_time"
	RideSortDistance   RideSortField = "distance"
	RideSortCreatedAt  RideSortField = "created_at"
)

// RideFilter is the validated, normalized form of the ride listing
// parameters. It is produced once by the filter compiler and consumed by the
// query planner and the repositories; it never carries raw request input.
type RideFilter struct {
	Status         *RideStatus
	RiderEmail     string
	RiderName      string
	DriverName     string
	DateFrom       *time.Time
	DateTo         *time.Time
	PickupTimeFrom *time.Time
	PickupTimeTo   *time.Time

	// SortBy is empty when the caller did not ask for an explicit order;
	// the candidate source then defaults to created_at descending.
	SortBy RideSortField
	Lat    *float64
	Lon    *float64

	Page            int
	PageSize        int
	PageSizeClamped bool

	// RiderIDs/DriverIDs hold the principals matched by the name/email
	// substring filters, resolved by the planner before the ride query.
	// nil means the filter was not supplied; an empty non-nil slice
	// matches nothing.
	RiderIDs  []primitive.ObjectID
	DriverIDs []primitive.ObjectID
}

func (f *RideFilter) HasRiderLookup() bool {
	return f.RiderEmail != "" || f.RiderName != ""
}

func (f *RideFilter) HasDriverLookup() bool {
	return f.DriverName != ""
}

func (f *RideFilter) HasCoordinates() bool {
	return f.Lat != nil && f.Lon != nil
}

// Applied reports the filters actually in effect after normalization and
// clamping, for the response metadata.
func (f *RideFilter) Applied() map[string]interface{} {
	applied := map[string]interface{}{
		"page":      f.Page,
		"page_size": f.PageSize,
	}
	if f.PageSizeClamped {
		applied["page_size_clamped"] = true
	}
	if f.Status != nil {
		applied["status"] = *f.Status
	}
	if f.RiderEmail != "" {
		applied["rider_email"] = f.RiderEmail
	}
	if f.RiderName != "" {
		applied["rider_name"] = f.RiderName
	}
	if f.DriverName != "" {
		applied["driver_name"] = f.DriverName
	}
	if f.DateFrom != nil {
		applied["date_from"] = f.DateFrom.Format(time.RFC3339)
	}
	if f.DateTo != nil {
		applied["date_to"] = f.DateTo.Format(time.RFC3339)
	}
	if f.PickupTimeFrom != nil {
		applied["pickup_time_from"] = f.PickupTimeFrom.Format(time.RFC3339)
	}
	if f.PickupTimeTo != nil {
		applied["pickup_time_to"] = f.PickupTimeTo.Format(time.RFC3339)
	}
	if f.SortBy != "" {
		applied["sort_by"] = f.SortBy
	}
	if f.Lat != nil {
		applied["lat"] = *f.Lat
	}
	if f.Lon != nil {
		applied["lon"] = *f.Lon
	}
	return applied
}
