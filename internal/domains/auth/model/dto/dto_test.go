package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hostmaster/infras/jwt"
	"hostmaster/internal/domains/auth/model/dto"
	"hostmaster/permissions"
	"hostmaster/shared"
)

func TestNewTokenResponse(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	assert.Equal(t, dto.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}, dto.NewTokenResponse(pair))
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Username: "alice",
		Password: "secret-password",
		Email:    stringPtr("alice@example.com"),
	}

	user := req.ToUserModel("hashed")

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hashed", user.HashedPassword)
	assert.Equal(t, permissions.RoleClient, user.Role)
	assert.False(t, user.Disabled)
	assert.Equal(t, "alice", user.CreatedBy)
}

func TestPasswordUpdate(t *testing.T) {
	fields := shared.TransformFields(dto.PasswordUpdate{HashedPassword: "hashed-new-password"}, "alice")

	assert.Equal(t, "hashed-new-password", fields["hashed_password"])
	assert.Equal(t, "alice", fields["modified_by"])
}

func stringPtr(s string) *string {
	return &s
}
