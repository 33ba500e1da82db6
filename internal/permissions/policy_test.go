package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
)

func newUser(role models.Role) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: role}
}

func rideFor(rider *models.User, driver *models.User) *models.Ride {
	ride := &models.Ride{ID: primitive.NewObjectID(), RiderID: rider.ID}
	if driver != nil {
		ride.DriverID = &driver.ID
	}
	return ride
}

func TestPolicyEvaluate(t *testing.T) {
	admin := newUser(models.RoleAdmin)
	rider := newUser(models.RoleRider)
	otherRider := newUser(models.RoleRider)
	driver := newUser(models.RoleDriver)
	unknownRole := &models.User{ID: primitive.NewObjectID(), Role: "support"}

	ownRide := rideFor(rider, driver)
	foreignRide := rideFor(otherRider, nil)

	policy := NewPolicy()

	tests := []struct {
		name      string
		principal *models.User
		action    Action
		resource  Resource
		want      Decision
	}{
		{name: "anonymous list denied", principal: nil, action: ActionList, want: Deny},
		{name: "anonymous retrieve denied", principal: nil, action: ActionRetrieve, resource: ownRide, want: Deny},
		{name: "admin list allowed", principal: admin, action: ActionList, want: Allow},
		{name: "admin delete allowed", principal: admin, action: ActionDelete, resource: foreignRide, want: Allow},
		{name: "rider list denied", principal: rider, action: ActionList, want: Deny},
		{name: "rider own ride allowed", principal: rider, action: ActionRetrieve, resource: ownRide, want: Allow},
		{name: "rider foreign ride denied", principal: rider, action: ActionRetrieve, resource: foreignRide, want: Deny},
		{name: "driver assigned ride allowed", principal: driver, action: ActionRetrieve, resource: ownRide, want: Allow},
		{name: "driver unassigned ride denied", principal: driver, action: ActionRetrieve, resource: foreignRide, want: Deny},
		{name: "rider without resource denied", principal: rider, action: ActionRetrieve, want: Deny},
		{name: "unrecognized role fails closed", principal: unknownRole, action: ActionRetrieve, resource: ownRide, want: Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, policy.Evaluate(tt.principal, tt.action, tt.resource))
		})
	}
}

func TestPolicyOpenActions(t *testing.T) {
	policy := NewPolicy(ActionCreate)

	require.True(t, policy.Evaluate(nil, ActionCreate, nil).Allowed())
	require.False(t, policy.Evaluate(nil, ActionList, nil).Allowed())

	// Open actions only widen the anonymous case; authenticated principals
	// still go through the role rules.
	rider := newUser(models.RoleRider)
	require.False(t, policy.Evaluate(rider, ActionCreate, nil).Allowed())
}

func TestUserSelfAccess(t *testing.T) {
	policy := NewPolicy()
	rider := newUser(models.RoleRider)
	other := newUser(models.RoleRider)

	require.True(t, policy.Evaluate(rider, ActionRetrieve, rider).Allowed())
	require.False(t, policy.Evaluate(rider, ActionRetrieve, other).Allowed())
	require.True(t, policy.Evaluate(newUser(models.RoleAdmin), ActionRetrieve, other).Allowed())
}
