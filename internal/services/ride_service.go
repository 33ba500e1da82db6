package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/repositories/interfaces"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

// RideDetail is one listing row: the ride plus everything the response
// embeds, assembled from the page's bulk lookups.
type RideDetail struct {
	Ride         *models.Ride
	Rider        *models.User
	Driver       *models.User
	Events       []*models.RideEvent
	TodaysEvents []*models.RideEvent

	// DistanceToPickup is the km distance from the query point to the
	// ride's pickup, rounded to two decimals. Nil when the caller supplied
	// no coordinates.
	DistanceToPickup *float64
}

// RideListResult carries one page and the pagination facts needed to build
// the envelope. Total always reflects the full matching dataset, not the
// page.
type RideListResult struct {
	Rides  []*RideDetail
	Total  int64
	Filter *models.RideFilter
}

type RideService interface {
	// ListRides runs the compiled filter. Distance-sorted requests over
	// datasets larger than the configured cap fail with
	// *DatasetTooLargeError; every other path pages at the source.
	ListRides(ctx context.Context, filter *models.RideFilter) (*RideListResult, error)

	GetRide(ctx context.Context, id primitive.ObjectID) (*RideDetail, error)
	CreateRide(ctx context.Context, req *validators.RideCreateRequest) (*models.Ride, error)
	UpdateRide(ctx context.Context, id primitive.ObjectID, req *validators.RideUpdateRequest) (*models.Ride, error)
	DeleteRide(ctx context.Context, id primitive.ObjectID) error
}

type rideService struct {
	rideRepo      interfaces.RideRepository
	userRepo      interfaces.UserRepository
	rideEventRepo interfaces.RideEventRepository
	aggregator    *EventAggregator

	distanceSortMaxResults int
	logger                 *logger.Logger
}

func NewRideService(
	rideRepo interfaces.RideRepository,
	userRepo interfaces.UserRepository,
	rideEventRepo interfaces.RideEventRepository,
	aggregator *EventAggregator,
	distanceSortMaxResults int,
	log *logger.Logger,
) RideService {
	if distanceSortMaxResults <= 0 {
		distanceSortMaxResults = utils.DefaultDistanceSortMaxResults
	}
	return &rideService{
		rideRepo:               rideRepo,
		userRepo:               userRepo,
		rideEventRepo:          rideEventRepo,
		aggregator:             aggregator,
		distanceSortMaxResults: distanceSortMaxResults,
		logger:                 log,
	}
}

func (s *rideService) ListRides(ctx context.Context, filter *models.RideFilter) (*RideListResult, error) {
	if err := s.resolvePrincipalFilters(ctx, filter); err != nil {
		return nil, err
	}

	// A substring filter that matched no users matches no rides; skip the
	// ride query entirely.
	if (filter.RiderIDs != nil && len(filter.RiderIDs) == 0) ||
		(filter.DriverIDs != nil && len(filter.DriverIDs) == 0) {
		return &RideListResult{Rides: []*RideDetail{}, Total: 0, Filter: filter}, nil
	}

	total, err := s.rideRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	var page []*models.Ride
	if filter.SortBy == models.RideSortDistance {
		page, err = s.distanceSortedPage(ctx, filter, total)
	} else {
		page, err = s.rideRepo.FindPage(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	var lat, lon *float64
	if filter.HasCoordinates() {
		lat, lon = filter.Lat, filter.Lon
	}
	details, err := s.buildDetails(ctx, page, lat, lon)
	if err != nil {
		return nil, err
	}

	return &RideListResult{Rides: details, Total: total, Filter: filter}, nil
}

// resolvePrincipalFilters turns the rider/driver substring filters into id
// sets before the ride query runs. Multiple filters on the same principal
// intersect: a ride must satisfy all of them.
func (s *rideService) resolvePrincipalFilters(ctx context.Context, filter *models.RideFilter) error {
	if !filter.HasRiderLookup() && !filter.HasDriverLookup() {
		return nil
	}
	if filter.RiderEmail != "" {
		ids, err := s.userRepo.FindIDsByEmailContains(ctx, filter.RiderEmail)
		if err != nil {
			return err
		}
		filter.RiderIDs = ids
	}
	if filter.RiderName != "" {
		ids, err := s.userRepo.FindIDsByNameContains(ctx, filter.RiderName)
		if err != nil {
			return err
		}
		if filter.RiderIDs != nil {
			filter.RiderIDs = intersectIDs(filter.RiderIDs, ids)
		} else {
			filter.RiderIDs = ids
		}
	}
	if filter.DriverName != "" {
		ids, err := s.userRepo.FindIDsByNameContains(ctx, filter.DriverName)
		if err != nil {
			return err
		}
		filter.DriverIDs = ids
	}
	return nil
}

// distanceSortedPage materializes the matching dataset, orders it by
// proximity to the query point, and windows the requested page in memory.
// The cardinality cap was designed to bound that materialization; counts
// strictly above it are refused.
func (s *rideService) distanceSortedPage(ctx context.Context, filter *models.RideFilter, total int64) ([]*models.Ride, error) {
	if total > int64(s.distanceSortMaxResults) {
		return nil, &DatasetTooLargeError{Count: total, Limit: s.distanceSortMaxResults}
	}

	rides, err := s.rideRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Keys travel with their rides: sorting a bare ride slice against a
	// parallel distance slice would read stale keys after the first swap.
	type keyedRide struct {
		ride *models.Ride
		km   float64
	}

	lat, lon := *filter.Lat, *filter.Lon
	keyed := make([]keyedRide, len(rides))
	for i, ride := range rides {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		keyed[i] = keyedRide{
			ride: ride,
			km:   utils.CalculateDistance(lat, lon, ride.PickupLatitude, ride.PickupLongitude),
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].km != keyed[j].km {
			return keyed[i].km < keyed[j].km
		}
		return keyed[i].ride.ID.Hex() < keyed[j].ride.ID.Hex()
	})

	params := &utils.PaginationParams{Page: filter.Page, PageSize: filter.PageSize}
	page := make([]*models.Ride, 0, filter.PageSize)
	for _, k := range utils.PageSlice(keyed, params) {
		page = append(page, k.ride)
	}
	return page, nil
}

// buildDetails embeds riders, drivers, and events using one bulk query per
// collection for the whole page.
func (s *rideService) buildDetails(ctx context.Context, rides []*models.Ride, lat, lon *float64) ([]*RideDetail, error) {
	userIDs := make([]primitive.ObjectID, 0, len(rides)*2)
	rideIDs := make([]primitive.ObjectID, 0, len(rides))
	seen := make(map[primitive.ObjectID]bool, len(rides)*2)

	for _, ride := range rides {
		rideIDs = append(rideIDs, ride.ID)
		if !seen[ride.RiderID] {
			seen[ride.RiderID] = true
			userIDs = append(userIDs, ride.RiderID)
		}
		if ride.DriverID != nil && !seen[*ride.DriverID] {
			seen[*ride.DriverID] = true
			userIDs = append(userIDs, *ride.DriverID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	events, err := s.rideEventRepo.GetByRideIDs(ctx, rideIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*RideDetail, 0, len(rides))
	for _, ride := range rides {
		detail := &RideDetail{
			Ride:         ride,
			Rider:        users[ride.RiderID],
			Events:       events[ride.ID],
			TodaysEvents: s.aggregator.TodaysEvents(events[ride.ID]),
		}
		if ride.DriverID != nil {
			detail.Driver = users[*ride.DriverID]
		}
		if lat != nil && lon != nil {
			distance := utils.RoundDistance(utils.CalculateDistance(*lat, *lon, ride.PickupLatitude, ride.PickupLongitude))
			detail.DistanceToPickup = &distance
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *rideService) GetRide(ctx context.Context, id primitive.ObjectID) (*RideDetail, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.buildDetails(ctx, []*models.Ride{ride}, nil, nil)
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

func (s *rideService) CreateRide(ctx context.Context, req *validators.RideCreateRequest) (*models.Ride, error) {
	riderID, err := primitive.ObjectIDFromHex(req.RiderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, riderID); err != nil {
		return nil, err
	}

	ride := &models.Ride{
		Status:           models.RideStatusRequested,
		RiderID:          riderID,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		PickupTime:       req.PickupTime,
	}

	if req.DriverID != "" {
		driverID, err := primitive.ObjectIDFromHex(req.DriverID)
		if err != nil {
			return nil, err
		}
		if _, err := s.userRepo.GetByID(ctx, driverID); err != nil {
			return nil, err
		}
		ride.DriverID = &driverID
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	event := &models.RideEvent{
		RideID:      ride.ID,
		Description: "Ride requested",
	}
	if err := s.rideEventRepo.Create(ctx, event); err != nil {
		s.logger.WithError(err).WithRideID(ride.ID).Warn("Failed to record ride creation event")
	}

	s.logger.LogRideEvent(ride.ID, "ride_created", map[string]interface{}{
		"rider_id": ride.RiderID.Hex(),
	})

	return ride, nil
}

func (s *rideService) UpdateRide(ctx context.Context, id primitive.ObjectID, req *validators.RideUpdateRequest) (*models.Ride, error) {
	current, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	statusChanged := false

	if req.Status != "" && models.RideStatus(req.Status) != current.Status {
		updates["status"] = models.RideStatus(req.Status)
		statusChanged = true
	}
	if req.DriverID != "" {
		driverID, err := primitive.ObjectIDFromHex(req.DriverID)
		if err != nil {
			return nil, err
		}
		if _, err := s.userRepo.GetByID(ctx, driverID); err != nil {
			return nil, err
		}
		updates["driver_id"] = driverID
	}
	if req.PickupLatitude != nil {
		updates["pickup_latitude"] = *req.PickupLatitude
	}
	if req.PickupLongitude != nil {
		updates["pickup_longitude"] = *req.PickupLongitude
	}
	if req.DropoffLatitude != nil {
		updates["dropoff_latitude"] = *req.DropoffLatitude
	}
	if req.DropoffLongitude != nil {
		updates["dropoff_longitude"] = *req.DropoffLongitude
	}
	if req.PickupTime != nil {
		updates["pickup_time"] = *req.PickupTime
	}

	if len(updates) > 0 {
		if err := s.rideRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	if statusChanged {
		event := &models.RideEvent{
			RideID:      id,
			Description: "Status changed to " + req.Status,
		}
		if err := s.rideEventRepo.Create(ctx, event); err != nil {
			s.logger.WithError(err).WithRideID(id).Warn("Failed to record status change event")
		}
	}

	return s.rideRepo.GetByID(ctx, id)
}

func (s *rideService) DeleteRide(ctx context.Context, id primitive.ObjectID) error {
	if err := s.rideRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.rideEventRepo.DeleteByRideID(ctx, id); err != nil {
		s.logger.WithError(err).WithRideID(id).Warn("Failed to delete ride events")
	}

	s.logger.LogRideEvent(id, "ride_deleted", nil)

	return nil
}

func intersectIDs(a, b []primitive.ObjectID) []primitive.ObjectID {
	inA := make(map[primitive.ObjectID]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	out := []primitive.ObjectID{}
	for _, id := range b {
		if inA[id] {
			out = append(out, id)
		}
	}
	return out
}
