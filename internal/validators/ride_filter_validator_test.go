package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
)

func TestCompileRideFilterDefaults(t *testing.T) {
	filter, errs := CompileRideFilter(&RideFilterParams{})
	require.Empty(t, errs)
	require.NotNil(t, filter)
	require.Equal(t, 1, filter.Page)
	require.Equal(t, utils.DefaultPageSize, filter.PageSize)
	require.False(t, filter.PageSizeClamped)
	require.Nil(t, filter.Status)
	require.Empty(t, filter.SortBy)
}

func TestCompileRideFilterFields(t *testing.T) {
	filter, errs := CompileRideFilter(&RideFilterParams{
		Status:         "en-route",
		RiderEmail:     "alice@",
		RiderName:      "ali",
		DriverName:     "bob",
		DateFrom:       "2026-08-01",
		DateTo:         "2026-08-30T12:00:00Z",
		PickupTimeFrom: "2026-08-15 08:00:00",
		SortBy:         "pickup_time",
		Page:           "2",
		PageSize:       "50",
	})
	require.Empty(t, errs)
	require.Equal(t, models.RideStatusEnRoute, *filter.Status)
	require.Equal(t, "alice@", filter.RiderEmail)
	require.Equal(t, "ali", filter.RiderName)
	require.Equal(t, "bob", filter.DriverName)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *filter.DateFrom)
	require.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), *filter.DateTo)
	require.NotNil(t, filter.PickupTimeFrom)
	require.Equal(t, models.RideSortPickupTime, filter.SortBy)
	require.Equal(t, 2, filter.Page)
	require.Equal(t, 50, filter.PageSize)
}

func TestCompileRideFilterRejections(t *testing.T) {
	tests := []struct {
		name      string
		params    RideFilterParams
		wantField string
	}{
		{name: "unknown status", params: RideFilterParams{Status: "flying"}, wantField: "status"},
		{name: "unknown sort field", params: RideFilterParams{SortBy: "price"}, wantField: "sort_by"},
		{name: "malformed date_from", params: RideFilterParams{DateFrom: "yesterday"}, wantField: "date_from"},
		{name: "malformed pickup_time_to", params: RideFilterParams{PickupTimeTo: "13/01/2026"}, wantField: "pickup_time_to"},
		{name: "non-numeric lat", params: RideFilterParams{Lat: "north", Lon: "0"}, wantField: "lat"},
		{name: "lat out of range", params: RideFilterParams{Lat: "95", Lon: "0"}, wantField: "lat"},
		{name: "lon out of range", params: RideFilterParams{Lat: "0", Lon: "-181"}, wantField: "lon"},
		{name: "non-numeric page", params: RideFilterParams{Page: "first"}, wantField: "page"},
		{name: "zero page", params: RideFilterParams{Page: "0"}, wantField: "page"},
		{name: "non-numeric page_size", params: RideFilterParams{PageSize: "lots"}, wantField: "page_size"},
		{name: "zero page_size", params: RideFilterParams{PageSize: "0"}, wantField: "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, errs := CompileRideFilter(&tt.params)
			require.Nil(t, filter, "rejected input must not yield a partial filter")
			require.NotEmpty(t, errs)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			require.Contains(t, fields, tt.wantField)
		})
	}
}

func TestCompileRideFilterPageSizeClamp(t *testing.T) {
	filter, errs := CompileRideFilter(&RideFilterParams{PageSize: "250"})
	require.Empty(t, errs)
	require.Equal(t, utils.MaxPageSize, filter.PageSize)
	require.True(t, filter.PageSizeClamped)

	applied := filter.Applied()
	require.Equal(t, true, applied["page_size_clamped"])
	require.Equal(t, utils.MaxPageSize, applied["page_size"])
}

func TestCompileRideFilterCrossField(t *testing.T) {
	t.Run("distance sort without coordinates", func(t *testing.T) {
		filter, errs := CompileRideFilter(&RideFilterParams{SortBy: "distance"})
		require.Nil(t, filter)
		require.Len(t, errs, 2)
		for _, e := range errs {
			require.Equal(t, "GPS coordinates (lat, lon) are required for distance sorting.", e.Message)
		}
	})

	t.Run("distance sort with only lat", func(t *testing.T) {
		filter, errs := CompileRideFilter(&RideFilterParams{SortBy: "distance", Lat: "40.7"})
		require.Nil(t, filter)
		require.Len(t, errs, 1)
		require.Equal(t, "lon", errs[0].Field)
	})

	t.Run("lat without lon", func(t *testing.T) {
		filter, errs := CompileRideFilter(&RideFilterParams{Lat: "40.7"})
		require.Nil(t, filter)
		require.Len(t, errs, 1)
		require.Equal(t, "lon", errs[0].Field)
		require.Equal(t, "lat and lon must be provided together", errs[0].Message)
	})

	t.Run("lon without lat", func(t *testing.T) {
		filter, errs := CompileRideFilter(&RideFilterParams{Lon: "-74.0"})
		require.Nil(t, filter)
		require.Len(t, errs, 1)
		require.Equal(t, "lat", errs[0].Field)
	})

	t.Run("structural errors suppress cross-field checks", func(t *testing.T) {
		_, errs := CompileRideFilter(&RideFilterParams{SortBy: "distance", Page: "zero"})
		require.Len(t, errs, 1)
		require.Equal(t, "page", errs[0].Field)
	})

	t.Run("distance sort with both coordinates", func(t *testing.T) {
		filter, errs := CompileRideFilter(&RideFilterParams{SortBy: "distance", Lat: "40.7", Lon: "-74.0"})
		require.Empty(t, errs)
		require.Equal(t, models.RideSortDistance, filter.SortBy)
		require.Equal(t, 40.7, *filter.Lat)
		require.Equal(t, -74.0, *filter.Lon)
	})
}
