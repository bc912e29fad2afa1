package permissions_test

import (
	"context"
	"errors"
	"hostmaster/permissions"
	"hostmaster/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMembership struct {
	members map[int64][]string
	err     error
}

func (f fakeMembership) IsMember(_ context.Context, accommodationID int64, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	for _, member := range f.members[accommodationID] {
		if member == username {
			return true, nil
		}
	}

	return false, nil
}

var (
	admin    = permissions.Actor{Username: "root", Role: permissions.RoleAdmin}
	employee = permissions.Actor{Username: "erin", Role: permissions.RoleEmployee}
	client   = permissions.Actor{Username: "carl", Role: permissions.RoleClient}
	intruder = permissions.Actor{Username: "mallory", Role: permissions.Role("guest")}
)

func newPolicy() permissions.Policy {
	return permissions.NewPolicy(fakeMembership{members: map[int64][]string{1: {"erin"}}})
}

func assertAllowed(t *testing.T, err error, allowed bool) {
	t.Helper()

	if allowed {
		assert.NoError(t, err)

		return
	}

	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestPolicy_CreateReservationFor(t *testing.T) {
	tests := []struct {
		name     string
		actor    permissions.Actor
		username string
		allowed  bool
	}{
		{name: "admin on behalf of anyone", actor: admin, username: "carl", allowed: true},
		{name: "employee on behalf of anyone", actor: employee, username: "carl", allowed: true},
		{name: "client for self implicitly", actor: client, username: "", allowed: true},
		{name: "client for self explicitly", actor: client, username: "carl", allowed: true},
		{name: "client for someone else", actor: client, username: "dana", allowed: false},
		{name: "unknown role", actor: intruder, username: "", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, newPolicy().CreateReservationFor(tt.actor, tt.username), tt.allowed)
		})
	}
}

func TestPolicy_ManageReservation(t *testing.T) {
	tests := []struct {
		name    string
		actor   permissions.Actor
		owner   string
		allowed bool
	}{
		{name: "admin", actor: admin, owner: "carl", allowed: true},
		{name: "employee", actor: employee, owner: "carl", allowed: true},
		{name: "client owner", actor: client, owner: "carl", allowed: true},
		{name: "client not owner", actor: client, owner: "dana", allowed: false},
		{name: "unknown role", actor: intruder, owner: "mallory", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, newPolicy().ManageReservation(tt.actor, tt.owner), tt.allowed)
		})
	}
}

func TestPolicy_Listing(t *testing.T) {
	policy := newPolicy()

	ownOnly, err := policy.ListReservations(client)
	assert.NoError(t, err)
	assert.True(t, ownOnly)

	ownOnly, err = policy.ListReservations(employee)
	assert.NoError(t, err)
	assert.False(t, ownOnly)

	_, err = policy.ListReservations(intruder)
	assertAllowed(t, err, false)

	memberOnly, err := policy.ListAccommodations(employee)
	assert.NoError(t, err)
	assert.True(t, memberOnly)

	memberOnly, err = policy.ListAccommodations(client)
	assert.NoError(t, err)
	assert.False(t, memberOnly)

	_, err = policy.ListAccommodations(intruder)
	assertAllowed(t, err, false)
}

func TestPolicy_ManageAccommodation(t *testing.T) {
	tests := []struct {
		name            string
		actor           permissions.Actor
		accommodationID int64
		allowed         bool
	}{
		{name: "admin any accommodation", actor: admin, accommodationID: 2, allowed: true},
		{name: "employee associated", actor: employee, accommodationID: 1, allowed: true},
		{name: "employee not associated", actor: employee, accommodationID: 2, allowed: false},
		{name: "client", actor: client, accommodationID: 1, allowed: false},
		{name: "unknown role", actor: intruder, accommodationID: 1, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, newPolicy().ManageAccommodation(context.Background(), tt.actor, tt.accommodationID), tt.allowed)
		})
	}
}

func TestPolicy_ViewAccommodation(t *testing.T) {
	policy := newPolicy()

	assertAllowed(t, policy.ViewAccommodation(context.Background(), admin, 2), true)
	assertAllowed(t, policy.ViewAccommodation(context.Background(), client, 2), true)
	assertAllowed(t, policy.ViewAccommodation(context.Background(), employee, 1), true)
	assertAllowed(t, policy.ViewAccommodation(context.Background(), employee, 2), false)

	assert.True(t, policy.ViewStaff(admin))
	assert.True(t, policy.ViewStaff(employee))
	assert.False(t, policy.ViewStaff(client))
}

func TestPolicy_MembershipError(t *testing.T) {
	policy := permissions.NewPolicy(fakeMembership{err: errors.New("connection refused")})

	err := policy.ManageAccommodation(context.Background(), employee, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestPolicy_Catalog(t *testing.T) {
	policy := newPolicy()

	tests := []struct {
		name    string
		check   func(permissions.Actor) error
		allowed map[permissions.Role]bool
	}{
		{
			name:    "room types",
			check:   policy.ManageRoomTypes,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true},
		},
		{
			name:    "create extra service",
			check:   policy.CreateExtraService,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true, permissions.RoleEmployee: true},
		},
		{
			name:    "manage extra service",
			check:   policy.ManageExtraService,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true},
		},
		{
			name:    "locations",
			check:   policy.ManageLocations,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true},
		},
		{
			name:    "users",
			check:   policy.ManageUsers,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true},
		},
		{
			name:    "products",
			check:   policy.ManageProducts,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true},
		},
		{
			name:    "triage maintenance",
			check:   policy.TriageMaintenance,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true, permissions.RoleEmployee: true},
		},
		{
			name:    "create accommodation",
			check:   policy.CreateAccommodation,
			allowed: map[permissions.Role]bool{permissions.RoleAdmin: true, permissions.RoleEmployee: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, actor := range []permissions.Actor{admin, employee, client, intruder} {
				assertAllowed(t, tt.check(actor), tt.allowed[actor.Role])
			}
		})
	}
}

func TestPolicy_ManageReview(t *testing.T) {
	policy := newPolicy()

	assertAllowed(t, policy.ManageReview(client, "carl"), true)
	assertAllowed(t, policy.ManageReview(client, "dana"), false)
	assertAllowed(t, policy.ManageReview(employee, "carl"), false)
	assertAllowed(t, policy.ManageReview(admin, "carl"), true)
	assertAllowed(t, policy.ManageReview(permissions.Actor{Role: permissions.RoleClient}, ""), false)
}

func TestPolicy_Maintenance(t *testing.T) {
	ctx := context.Background()
	policy := newPolicy()

	t.Run("report", func(t *testing.T) {
		assertAllowed(t, policy.ReportMaintenance(ctx, admin, 2, false), true)
		assertAllowed(t, policy.ReportMaintenance(ctx, employee, 1, false), true)
		assertAllowed(t, policy.ReportMaintenance(ctx, employee, 2, false), false)
		assertAllowed(t, policy.ReportMaintenance(ctx, client, 1, true), true)
		assertAllowed(t, policy.ReportMaintenance(ctx, client, 1, false), false)
		assertAllowed(t, policy.ReportMaintenance(ctx, intruder, 1, true), false)
	})

	t.Run("manage", func(t *testing.T) {
		assertAllowed(t, policy.ManageMaintenance(ctx, admin, 2, "carl"), true)
		assertAllowed(t, policy.ManageMaintenance(ctx, employee, 1, "carl"), true)
		assertAllowed(t, policy.ManageMaintenance(ctx, employee, 2, "carl"), false)
		assertAllowed(t, policy.ManageMaintenance(ctx, client, 1, "carl"), true)
		assertAllowed(t, policy.ManageMaintenance(ctx, client, 1, "dana"), false)
	})

	t.Run("delete", func(t *testing.T) {
		assertAllowed(t, policy.DeleteMaintenance(ctx, admin, 2), true)
		assertAllowed(t, policy.DeleteMaintenance(ctx, employee, 1), true)
		assertAllowed(t, policy.DeleteMaintenance(ctx, employee, 2), false)
		assertAllowed(t, policy.DeleteMaintenance(ctx, client, 1), false)
	})

	t.Run("list scope", func(t *testing.T) {
		tests := []struct {
			actor permissions.Actor
			want  permissions.ListScope
		}{
			{actor: admin, want: permissions.ScopeAll},
			{actor: employee, want: permissions.ScopeMember},
			{actor: client, want: permissions.ScopeOwn},
		}

		for _, tt := range tests {
			scope, err := policy.ListMaintenance(tt.actor)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, scope)
		}

		_, err := policy.ListMaintenance(intruder)
		assertAllowed(t, err, false)
	})
}
