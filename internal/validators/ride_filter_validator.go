package validators

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
)

// RideFilterParams carries the raw, untyped listing parameters exactly as
// the caller sent them. Compilation never mutates them.
type RideFilterParams struct {
	Status         string `form:"status"`
	RiderEmail     string `form:"rider_email"`
	RiderName      string `form:"rider_name"`
	DriverName     string `form:"driver_name"`
	DateFrom       string `form:"date_from"`
	DateTo         string `form:"date_to"`
	PickupTimeFrom string `form:"pickup_time_from"`
	PickupTimeTo   string `form:"pickup_time_to"`
	SortBy         string `form:"sort_by"`
	Lat            string `form:"lat"`
	Lon            string `form:"lon"`
	Page           string `form:"page"`
	PageSize       string `form:"page_size"`
}

func RideFilterParamsFromQuery(c *gin.Context) *RideFilterParams {
	return &RideFilterParams{
		Status:         c.Query("status"),
		RiderEmail:     c.Query("rider_email"),
		RiderName:      c.Query("rider_name"),
		DriverName:     c.Query("driver_name"),
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
		PickupTimeFrom: c.Query("pickup_time_from"),
		PickupTimeTo:   c.Query("pickup_time_to"),
		SortBy:         c.Query("sort_by"),
		Lat:            c.Query("lat"),
		Lon:            c.Query("lon"),
		Page:           c.Query("page"),
		PageSize:       c.Query("page_size"),
	}
}

// CompileRideFilter turns raw listing parameters into a validated, normalized
// RideFilter. Structural checks (types, ranges, enums) run before the
// cross-field ones; on any violation no filter is returned, so a filter is
// never partially applied. A page_size above the ceiling is clamped rather
// than rejected and the clamp is recorded on the result.
func CompileRideFilter(params *RideFilterParams) (*models.RideFilter, ValidationErrors) {
	var errors ValidationErrors
	filter := &models.RideFilter{
		Page:     1,
		PageSize: utils.DefaultPageSize,
	}

	if params.Status != "" {
		status := models.RideStatus(params.Status)
		if !models.IsValidRideStatus(status) {
			errors = append(errors, ValidationError{
				Field:   "status",
				Value:   params.Status,
				Message: "Status must be one of: requested, accepted, en-route, pickup, dropoff, completed, cancelled",
			})
		} else {
			filter.Status = &status
		}
	}

	filter.RiderEmail = params.RiderEmail
	filter.RiderName = params.RiderName
	filter.DriverName = params.DriverName

	filter.DateFrom = compileTime(params.DateFrom, "date_from", &errors)
	filter.DateTo = compileTime(params.DateTo, "date_to", &errors)
	filter.PickupTimeFrom = compileTime(params.PickupTimeFrom, "pickup_time_from", &errors)
	filter.PickupTimeTo = compileTime(params.PickupTimeTo, "pickup_time_to", &errors)

	if params.SortBy != "" {
		switch models.RideSortField(params.SortBy) {
		case models.RideSortPickupTime, models.RideSortDistance, models.RideSortCreatedAt:
			filter.SortBy = models.RideSortField(params.SortBy)
		default:
			errors = append(errors, ValidationError{
				Field:   "sort_by",
				Value:   params.SortBy,
				Message: "Invalid sort_by parameter. Must be 'pickup_time', 'distance', or 'created_at'.",
			})
		}
	}

	filter.Lat = compileCoordinate(params.Lat, "lat", -90, 90, &errors)
	filter.Lon = compileCoordinate(params.Lon, "lon", -180, 180, &errors)

	if params.Page != "" {
		page, err := strconv.Atoi(params.Page)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{
				Field:   "page",
				Value:   params.Page,
				Message: "Invalid page parameter. Must be an integer.",
			})
		case page < 1:
			errors = append(errors, ValidationError{
				Field:   "page",
				Value:   params.Page,
				Message: "page must be at least 1",
			})
		default:
			filter.Page = page
		}
	}

	if params.PageSize != "" {
		pageSize, err := strconv.Atoi(params.PageSize)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{
				Field:   "page_size",
				Value:   params.PageSize,
				Message: "Invalid page_size parameter. Must be an integer.",
			})
		case pageSize < utils.MinPageSize:
			errors = append(errors, ValidationError{
				Field:   "page_size",
				Value:   params.PageSize,
				Message: "page_size must be at least 1",
			})
		case pageSize > utils.MaxPageSize:
			filter.PageSize = utils.MaxPageSize
			filter.PageSizeClamped = true
		default:
			filter.PageSize = pageSize
		}
	}

	// Cross-field rules only once the fields themselves are well formed.
	if len(errors) == 0 {
		if filter.SortBy == models.RideSortDistance && (filter.Lat == nil || filter.Lon == nil) {
			if filter.Lat == nil {
				errors = append(errors, ValidationError{
					Field:   "lat",
					Message: "GPS coordinates (lat, lon) are required for distance sorting.",
				})
			}
			if filter.Lon == nil {
				errors = append(errors, ValidationError{
					Field:   "lon",
					Message: "GPS coordinates (lat, lon) are required for distance sorting.",
				})
			}
		} else if (filter.Lat == nil) != (filter.Lon == nil) {
			missing := "lat"
			if filter.Lat != nil {
				missing = "lon"
			}
			errors = append(errors, ValidationError{
				Field:   missing,
				Message: "lat and lon must be provided together",
			})
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return filter, nil
}

func compileTime(value, field string, errors *ValidationErrors) *time.Time {
	if value == "" {
		return nil
	}
	t, err := utils.ParseFlexibleTime(value)
	if err != nil {
		*errors = append(*errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: field + " must be a valid datetime (RFC3339 or YYYY-MM-DD)",
		})
		return nil
	}
	return &t
}

func compileCoordinate(value, field string, min, max float64, errors *ValidationErrors) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errors = append(*errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: "Invalid GPS coordinates format. Must be valid numbers.",
		})
		return nil
	}
	if f < min || f > max {
		*errors = append(*errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("%s must be between %g and %g", field, min, max),
		})
		return nil
	}
	return &f
}
