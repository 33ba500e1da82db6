package services

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

type fakeRideRepo struct {
	rides         []*models.Ride
	countOverride *int64
	countCalls    int
	findAllCalls  int
}

func (f *fakeRideRepo) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	f.rides = append(f.rides, ride)
	return nil
}

func (f *fakeRideRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	for _, ride := range f.rides {
		if ride.ID == id {
			return ride, nil
		}
	}
	return nil, ErrRideNotFound
}

func (f *fakeRideRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	ride, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if status, ok := updates["status"].(models.RideStatus); ok {
		ride.Status = status
	}
	return nil
}

func (f *fakeRideRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, ride := range f.rides {
		if ride.ID == id {
			f.rides = append(f.rides[:i], f.rides[i+1:]...)
			return nil
		}
	}
	return ErrRideNotFound
}

func (f *fakeRideRepo) Count(ctx context.Context, filter *models.RideFilter) (int64, error) {
	f.countCalls++
	if f.countOverride != nil {
		return *f.countOverride, nil
	}
	return int64(len(f.rides)), nil
}

func (f *fakeRideRepo) FindPage(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error) {
	ordered := make([]*models.Ride, len(f.rides))
	copy(ordered, f.rides)
	sort.SliceStable(ordered, func(i, j int) bool {
		if filter.SortBy == models.RideSortPickupTime {
			return ordered[i].PickupTime.Before(*ordered[j].PickupTime)
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	params := &utils.PaginationParams{Page: filter.Page, PageSize: filter.PageSize}
	return utils.PageSlice(ordered, params), nil
}

func (f *fakeRideRepo) FindAll(ctx context.Context, filter *models.RideFilter) ([]*models.Ride, error) {
	f.findAllCalls++
	all := make([]*models.Ride, len(f.rides))
	copy(all, f.rides)
	return all, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, role *models.Role, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	found := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

func (f *fakeUserRepo) FindIDsByEmailContains(ctx context.Context, fragment string) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for id, user := range f.users {
		if containsFold(user.Email, fragment) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) FindIDsByNameContains(ctx context.Context, fragment string) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for id, user := range f.users {
		if containsFold(user.FirstName, fragment) || containsFold(user.LastName, fragment) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type fakeRideEventRepo struct {
	events []*models.RideEvent
}

func (f *fakeRideEventRepo) Create(ctx context.Context, event *models.RideEvent) error {
	event.ID = primitive.NewObjectID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeRideEventRepo) GetByRideIDs(ctx context.Context, rideIDs []primitive.ObjectID) (map[primitive.ObjectID][]*models.RideEvent, error) {
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range rideIDs {
		wanted[id] = true
	}
	byRide := map[primitive.ObjectID][]*models.RideEvent{}
	for _, event := range f.events {
		if wanted[event.RideID] {
			byRide[event.RideID] = append(byRide[event.RideID], event)
		}
	}
	return byRide, nil
}

func (f *fakeRideEventRepo) List(ctx context.Context, rideID *primitive.ObjectID, params *utils.PaginationParams) ([]*models.RideEvent, int64, error) {
	return nil, 0, nil
}

func (f *fakeRideEventRepo) DeleteByRideID(ctx context.Context, rideID primitive.ObjectID) error {
	kept := f.events[:0]
	for _, event := range f.events {
		if event.RideID != rideID {
			kept = append(kept, event)
		}
	}
	f.events = kept
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func newTestRideService(t *testing.T, rideRepo *fakeRideRepo, userRepo *fakeUserRepo, eventRepo *fakeRideEventRepo, cap int) RideService {
	t.Helper()
	return NewRideService(rideRepo, userRepo, eventRepo, NewEventAggregator(time.UTC), cap, testLogger(t))
}

func rideAt(rider *models.User, lat, lon float64, createdAt time.Time) *models.Ride {
	return &models.Ride{
		ID:              primitive.NewObjectID(),
		Status:          models.RideStatusRequested,
		RiderID:         rider.ID,
		PickupLatitude:  lat,
		PickupLongitude: lon,
		CreatedAt:       createdAt,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestListRidesDistanceOrdering(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider, Email: "rider@example.com"}
	base := time.Now()

	nyc := rideAt(rider, 40.7306, -73.9866, base)
	london := rideAt(rider, 51.5074, -0.1278, base.Add(time.Minute))
	tokyo := rideAt(rider, 35.6762, 139.6503, base.Add(2*time.Minute))

	rideRepo := &fakeRideRepo{rides: []*models.Ride{tokyo, london, nyc}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	filter := &models.RideFilter{
		SortBy:   models.RideSortDistance,
		Lat:      floatPtr(40.7150),
		Lon:      floatPtr(-74.0080),
		Page:     1,
		PageSize: 10,
	}

	result, err := svc.ListRides(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Total)
	require.Len(t, result.Rides, 3)

	require.Equal(t, nyc.ID, result.Rides[0].Ride.ID)
	require.Equal(t, london.ID, result.Rides[1].Ride.ID)
	require.Equal(t, tokyo.ID, result.Rides[2].Ride.ID)

	// Distances annotate every row, rounded to two decimals.
	for _, detail := range result.Rides {
		require.NotNil(t, detail.DistanceToPickup)
		require.Equal(t, utils.RoundDistance(*detail.DistanceToPickup), *detail.DistanceToPickup)
	}
	require.Less(t, *result.Rides[0].DistanceToPickup, *result.Rides[1].DistanceToPickup)
	require.Equal(t, rider, result.Rides[0].Rider)
}

func TestListRidesDistanceOrderingIsSourceOrderIndependent(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	base := time.Now()

	nyc := rideAt(rider, 40.7306, -73.9866, base)
	london := rideAt(rider, 51.5074, -0.1278, base.Add(time.Minute))
	tokyo := rideAt(rider, 35.6762, 139.6503, base.Add(2*time.Minute))

	// The sorted page must not depend on the order rides leave the source.
	sources := [][]*models.Ride{
		{nyc, london, tokyo},
		{nyc, tokyo, london},
		{london, nyc, tokyo},
		{london, tokyo, nyc},
		{tokyo, nyc, london},
		{tokyo, london, nyc},
	}

	for _, source := range sources {
		rideRepo := &fakeRideRepo{rides: source}
		svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

		filter := &models.RideFilter{
			SortBy:   models.RideSortDistance,
			Lat:      floatPtr(40.7150),
			Lon:      floatPtr(-74.0080),
			Page:     1,
			PageSize: 10,
		}

		result, err := svc.ListRides(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, result.Rides, 3)

		require.Equal(t, nyc.ID, result.Rides[0].Ride.ID)
		require.Equal(t, london.ID, result.Rides[1].Ride.ID)
		require.Equal(t, tokyo.ID, result.Rides[2].Ride.ID)

		for i := 1; i < len(result.Rides); i++ {
			require.LessOrEqual(t, *result.Rides[i-1].DistanceToPickup, *result.Rides[i].DistanceToPickup)
		}
	}
}

func TestListRidesDistanceTieBreaksByID(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	base := time.Now()

	a := rideAt(rider, 40.7306, -73.9866, base)
	b := rideAt(rider, 40.7306, -73.9866, base)

	rideRepo := &fakeRideRepo{rides: []*models.Ride{b, a}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	filter := &models.RideFilter{
		SortBy:   models.RideSortDistance,
		Lat:      floatPtr(40.7150),
		Lon:      floatPtr(-74.0080),
		Page:     1,
		PageSize: 10,
	}

	result, err := svc.ListRides(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, result.Rides, 2)
	require.Less(t, result.Rides[0].Ride.ID.Hex(), result.Rides[1].Ride.ID.Hex())
}

func TestListRidesDistanceCap(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	rideRepo := &fakeRideRepo{rides: []*models.Ride{rideAt(rider, 40.7, -74.0, time.Now())}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	filter := &models.RideFilter{
		SortBy:   models.RideSortDistance,
		Lat:      floatPtr(40.7150),
		Lon:      floatPtr(-74.0080),
		Page:     1,
		PageSize: 10,
	}

	t.Run("count above cap is refused", func(t *testing.T) {
		over := int64(10001)
		rideRepo.countOverride = &over
		rideRepo.findAllCalls = 0

		_, err := svc.ListRides(context.Background(), filter)
		dtl, ok := AsDatasetTooLarge(err)
		require.True(t, ok)
		require.Equal(t, int64(10001), dtl.Count)
		require.Equal(t, 10000, dtl.Limit)
		require.Zero(t, rideRepo.findAllCalls, "refused request must not materialize the dataset")
	})

	t.Run("count at cap proceeds", func(t *testing.T) {
		atCap := int64(10000)
		rideRepo.countOverride = &atCap

		result, err := svc.ListRides(context.Background(), filter)
		require.NoError(t, err)
		require.Equal(t, int64(10000), result.Total)
	})
}

func TestListRidesCountIndependentOfPage(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	base := time.Now()
	rideRepo := &fakeRideRepo{rides: []*models.Ride{
		rideAt(rider, 40.7, -74.0, base),
		rideAt(rider, 40.8, -74.1, base.Add(time.Minute)),
		rideAt(rider, 40.9, -74.2, base.Add(2*time.Minute)),
	}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	result, err := svc.ListRides(context.Background(), &models.RideFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Total)
	require.Len(t, result.Rides, 2)

	// Newest first without an explicit sort.
	require.True(t, result.Rides[0].Ride.CreatedAt.After(result.Rides[1].Ride.CreatedAt))
}

func TestListRidesPagePastEndIsEmpty(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	rideRepo := &fakeRideRepo{rides: []*models.Ride{rideAt(rider, 40.7, -74.0, time.Now())}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	result, err := svc.ListRides(context.Background(), &models.RideFilter{Page: 5, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	require.Empty(t, result.Rides)
}

func TestListRidesUnmatchedRiderEmailShortCircuits(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider, Email: "alice@example.com"}
	rideRepo := &fakeRideRepo{rides: []*models.Ride{rideAt(rider, 40.7, -74.0, time.Now())}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	result, err := svc.ListRides(context.Background(), &models.RideFilter{
		RiderEmail: "nobody@nowhere",
		Page:       1,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Zero(t, result.Total)
	require.Empty(t, result.Rides)
	require.Zero(t, rideRepo.countCalls, "unmatched principal filter must skip the ride query")
}

func TestListRidesCancelledContext(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	rideRepo := &fakeRideRepo{rides: []*models.Ride{rideAt(rider, 40.7, -74.0, time.Now())}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), &fakeRideEventRepo{}, 10000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListRides(ctx, &models.RideFilter{
		SortBy:   models.RideSortDistance,
		Lat:      floatPtr(40.7150),
		Lon:      floatPtr(-74.0080),
		Page:     1,
		PageSize: 10,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestListRidesEmbedsEventsAndTodaysEvents(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	ride := rideAt(rider, 40.7, -74.0, time.Now())

	eventRepo := &fakeRideEventRepo{}
	require.NoError(t, eventRepo.Create(context.Background(), &models.RideEvent{
		RideID:      ride.ID,
		Description: "Ride requested",
		CreatedAt:   time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, eventRepo.Create(context.Background(), &models.RideEvent{
		RideID:      ride.ID,
		Description: "Status changed to accepted",
		CreatedAt:   time.Now(),
	}))

	rideRepo := &fakeRideRepo{rides: []*models.Ride{ride}}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), eventRepo, 10000)

	result, err := svc.ListRides(context.Background(), &models.RideFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Rides, 1)

	detail := result.Rides[0]
	require.Len(t, detail.Events, 2)
	require.Len(t, detail.TodaysEvents, 1)
	require.Equal(t, "Status changed to accepted", detail.TodaysEvents[0].Description)
	require.Nil(t, detail.DistanceToPickup, "no query coordinates means no distance annotation")
}

func TestUpdateRideRecordsStatusChange(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	ride := rideAt(rider, 40.7, -74.0, time.Now())

	rideRepo := &fakeRideRepo{rides: []*models.Ride{ride}}
	eventRepo := &fakeRideEventRepo{}
	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), eventRepo, 10000)

	updated, err := svc.UpdateRide(context.Background(), ride.ID, &validators.RideUpdateRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, models.RideStatusCompleted, updated.Status)

	require.Len(t, eventRepo.events, 1)
	require.Equal(t, "Status changed to completed", eventRepo.events[0].Description)
	require.Equal(t, ride.ID, eventRepo.events[0].RideID)
}

func TestDeleteRideRemovesEvents(t *testing.T) {
	rider := &models.User{ID: primitive.NewObjectID(), Role: models.RoleRider}
	ride := rideAt(rider, 40.7, -74.0, time.Now())

	rideRepo := &fakeRideRepo{rides: []*models.Ride{ride}}
	eventRepo := &fakeRideEventRepo{}
	require.NoError(t, eventRepo.Create(context.Background(), &models.RideEvent{RideID: ride.ID, Description: "Ride requested"}))

	svc := newTestRideService(t, rideRepo, newFakeUserRepo(rider), eventRepo, 10000)

	require.NoError(t, svc.DeleteRide(context.Background(), ride.ID))
	require.Empty(t, rideRepo.rides)
	require.Empty(t, eventRepo.events)
}
