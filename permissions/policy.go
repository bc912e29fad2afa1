package permissions

import (
	"context"
	"fmt"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

// Membership reports whether a user is associated with an accommodation.
type Membership interface {
	IsMember(ctx context.Context, accommodationID int64, username string) (bool, error)
}

// Policy is the single authority on who may do what. Every method returns nil
// when the action is allowed and a forbidden failure otherwise.
type Policy interface {
	CreateReservationFor(actor Actor, username string) error
	ManageReservation(actor Actor, owner string) error
	ListReservations(actor Actor) (ownOnly bool, err error)

	CreateAccommodation(actor Actor) error
	ListAccommodations(actor Actor) (memberOnly bool, err error)
	ManageAccommodation(ctx context.Context, actor Actor, accommodationID int64) error
	ViewAccommodation(ctx context.Context, actor Actor, accommodationID int64) error
	ViewStaff(actor Actor) bool

	ManageRoomTypes(actor Actor) error
	CreateExtraService(actor Actor) error
	ManageExtraService(actor Actor) error
	ManageReview(actor Actor, owner string) error
	ManageLocations(actor Actor) error
	ManageUsers(actor Actor) error

	ReportMaintenance(ctx context.Context, actor Actor, accommodationID int64, staying bool) error
	ListMaintenance(actor Actor) (ListScope, error)
	ManageMaintenance(ctx context.Context, actor Actor, accommodationID int64, reporter string) error
	TriageMaintenance(actor Actor) error
	DeleteMaintenance(ctx context.Context, actor Actor, accommodationID int64) error

	ManageProducts(actor Actor) error
}

// ListScope narrows a listing to the rows an actor may see.
type ListScope int

const (
	ScopeAll ListScope = iota
	ScopeMember
	ScopeOwn
)

type policyImpl struct {
	membership Membership
}

func NewPolicy(membership Membership) Policy {
	return &policyImpl{
		membership: membership,
	}
}

func (p *policyImpl) CreateReservationFor(actor Actor, username string) error {
	switch actor.Role {
	case RoleAdmin, RoleEmployee:
		return nil
	case RoleClient:
		if username == "" || username == actor.Username {
			return nil
		}

		return failure.Forbidden("clients can only create reservations for themselves") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ManageReservation(actor Actor, owner string) error {
	switch actor.Role {
	case RoleAdmin, RoleEmployee:
		return nil
	case RoleClient:
		if owner == actor.Username {
			return nil
		}

		return failure.Forbidden("clients can only manage their own reservations") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ListReservations(actor Actor) (bool, error) {
	switch actor.Role {
	case RoleAdmin, RoleEmployee:
		return false, nil
	case RoleClient:
		return true, nil
	}

	return false, failure.ForbiddenError
}

func (p *policyImpl) CreateAccommodation(actor Actor) error {
	if actor.Role.IsStaff() {
		return nil
	}

	return failure.Forbidden("only admins and employees can create accommodations") // nolint:wrapcheck
}

// ListAccommodations restricts employees to the accommodations they are associated with.
func (p *policyImpl) ListAccommodations(actor Actor) (bool, error) {
	switch actor.Role {
	case RoleAdmin, RoleClient:
		return false, nil
	case RoleEmployee:
		return true, nil
	}

	return false, failure.ForbiddenError
}

func (p *policyImpl) ManageAccommodation(ctx context.Context, actor Actor, accommodationID int64) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleEmployee:
		return p.requireMember(ctx, actor, accommodationID, "employees can only manage accommodations they are associated with")
	case RoleClient:
		return failure.Forbidden("clients cannot manage accommodations") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ViewAccommodation(ctx context.Context, actor Actor, accommodationID int64) error {
	switch actor.Role {
	case RoleAdmin, RoleClient:
		return nil
	case RoleEmployee:
		return p.requireMember(ctx, actor, accommodationID, "employees can only view accommodations they are associated with")
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ViewStaff(actor Actor) bool {
	return actor.Role.IsStaff()
}

func (p *policyImpl) ManageRoomTypes(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	return failure.Forbidden("only admins can manage room types") // nolint:wrapcheck
}

func (p *policyImpl) CreateExtraService(actor Actor) error {
	if actor.Role.IsStaff() {
		return nil
	}

	return failure.Forbidden("only admins and employees can create extra services") // nolint:wrapcheck
}

func (p *policyImpl) ManageExtraService(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	return failure.Forbidden("only admins can modify extra services") // nolint:wrapcheck
}

func (p *policyImpl) ManageReview(actor Actor, owner string) error {
	if actor.IsAdmin() || (owner != "" && owner == actor.Username) {
		return nil
	}

	return failure.Forbidden("only the author or an admin can modify this review") // nolint:wrapcheck
}

func (p *policyImpl) ManageLocations(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	return failure.Forbidden("only admins can manage locations") // nolint:wrapcheck
}

func (p *policyImpl) ManageUsers(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	return failure.Forbidden("only admins can manage users") // nolint:wrapcheck
}

// ReportMaintenance lets clients report problems only in a room they are staying in.
func (p *policyImpl) ReportMaintenance(ctx context.Context, actor Actor, accommodationID int64, staying bool) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleEmployee:
		return p.requireMember(ctx, actor, accommodationID, "employees can only report maintenance for accommodations they are associated with")
	case RoleClient:
		if staying {
			return nil
		}

		return failure.Forbidden("clients can only report maintenance for a room they are currently staying in") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ListMaintenance(actor Actor) (ListScope, error) {
	switch actor.Role {
	case RoleAdmin:
		return ScopeAll, nil
	case RoleEmployee:
		return ScopeMember, nil
	case RoleClient:
		return ScopeOwn, nil
	}

	return ScopeOwn, failure.ForbiddenError
}

func (p *policyImpl) ManageMaintenance(ctx context.Context, actor Actor, accommodationID int64, reporter string) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleEmployee:
		return p.requireMember(ctx, actor, accommodationID, "employees can only manage maintenance for accommodations they are associated with")
	case RoleClient:
		if reporter != "" && reporter == actor.Username {
			return nil
		}

		return failure.Forbidden("clients can only manage maintenance requests they reported") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

// TriageMaintenance guards the status and assignee of a request.
func (p *policyImpl) TriageMaintenance(actor Actor) error {
	if actor.Role.IsStaff() {
		return nil
	}

	return failure.Forbidden("only admins and employees can change the status or assignee of a maintenance request") // nolint:wrapcheck
}

func (p *policyImpl) DeleteMaintenance(ctx context.Context, actor Actor, accommodationID int64) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleEmployee:
		return p.requireMember(ctx, actor, accommodationID, "employees can only delete maintenance for accommodations they are associated with")
	case RoleClient:
		return failure.Forbidden("clients cannot delete maintenance requests") // nolint:wrapcheck
	}

	return failure.ForbiddenError
}

func (p *policyImpl) ManageProducts(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	return failure.Forbidden("only admins can manage products") // nolint:wrapcheck
}

func (p *policyImpl) requireMember(ctx context.Context, actor Actor, accommodationID int64, message string) error {
	member, err := p.membership.IsMember(ctx, accommodationID, actor.Username)
	if err != nil {
		log.Error().Err(err).Int64("accommodation_id", accommodationID).Msg("failed to check accommodation membership")

		return fmt.Errorf("failed to check accommodation membership: %w", err)
	}

	if !member {
		return failure.Forbidden(message) // nolint:wrapcheck
	}

	return nil
}
