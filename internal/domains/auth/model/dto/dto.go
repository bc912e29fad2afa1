package dto

import (
	"hostmaster/infras/jwt"
	userModel "hostmaster/internal/domains/user/model"
	"hostmaster/permissions"
	gModel "hostmaster/shared/model"
)

type RegisterRequest struct {
	Username string  `json:"username"            validate:"required,min=3,max=50"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	Email    *string `json:"email,omitempty"     validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

// ToUserModel always yields a client; staff accounts are created by admins.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		Username:       r.Username,
		Email:          r.Email,
		FullName:       r.FullName,
		HashedPassword: hashedPassword,
		Role:           permissions.RoleClient,
		Metadata:       gModel.NewMetadata(r.Username),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned by both login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func NewTokenResponse(pair *jwt.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// PasswordUpdate is the column patch written after a successful password change.
type PasswordUpdate struct {
	HashedPassword string `db:"hashed_password"`
}
