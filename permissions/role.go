package permissions

import (
	"context"
	"fmt"
	"hostmaster/shared/constant"
	"hostmaster/shared/failure"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

var roles = []Role{RoleAdmin, RoleEmployee, RoleClient}

// ParseRole accepts only the exact names of the known roles.
func ParseRole(value string) (Role, error) {
	for _, role := range roles {
		if string(role) == value {
			return role, nil
		}
	}

	return "", fmt.Errorf("unknown role %q", value)
}

func Roles() []Role {
	return append([]Role(nil), roles...)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	Username string
	Role     Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsEmployee() bool {
	return a.Role == RoleEmployee
}

func (a Actor) IsClient() bool {
	return a.Role == RoleClient
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, actor.Username)

	return context.WithValue(ctx, constant.ContextKeyUserRole, actor.Role.String())
}

// ActorFromContext reads the caller set by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	username, _ := ctx.Value(constant.ContextKeyUsername).(string)
	if username == "" {
		return Actor{}, failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	rawRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	role, err := ParseRole(rawRole)
	if err != nil {
		return Actor{}, failure.Forbidden("invalid role") // nolint:wrapcheck
	}

	return Actor{Username: username, Role: role}, nil
}
