package model

import (
	"hostmaster/permissions"
	"hostmaster/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldUsername       = "username"
	FieldEmail          = "email"
	FieldFullName       = "full_name"
	FieldHashedPassword = "hashed_password"
	FieldDisabled       = "disabled"
	FieldRole           = "role"
)

type User struct {
	Username       string           `db:"username"`
	Email          *string          `db:"email"`
	FullName       *string          `db:"full_name"`
	HashedPassword string           `db:"hashed_password"`
	Disabled       bool             `db:"disabled"`
	Role           permissions.Role `db:"role"`
	model.Metadata
}

// HasEmail reports whether notifications can be delivered to the user.
func (u User) HasEmail() bool {
	return u.Email != nil && *u.Email != ""
}
