package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hostmaster/config"
	"hostmaster/infras/jwt"
	jwtMocks "hostmaster/infras/jwt/mocks"
	"hostmaster/infras/otel/mocks"
	"hostmaster/internal/domains/auth/model/dto"
	"hostmaster/internal/domains/auth/service"
	userMocks "hostmaster/internal/domains/user/mocks"
	userModel "hostmaster/internal/domains/user/model"
	"hostmaster/permissions"
	"hostmaster/shared/failure"
	gModel "hostmaster/shared/model"
	"hostmaster/shared/timezone"
)

// "password" hashed with bcrypt
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func validUser() userModel.User {
	return userModel.User{
		Username:       "alice",
		Email:          stringPtr("alice@example.com"),
		FullName:       stringPtr("Alice Doe"),
		HashedPassword: passwordHash,
		Role:           permissions.RoleEmployee,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	req := dto.RegisterRequest{
		Username: "bob",
		Password: "long-enough-password",
		Email:    stringPtr("bob@example.com"),
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "registers a client",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "bob", user.Username)
						assert.Equal(t, permissions.RoleClient, user.Role)
						assert.NotEqual(t, req.Password, user.HashedPassword)

						return nil
					})
			},
		},
		{
			name: "username already taken",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert failure",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "alice", "alice@example.com", "employee").
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}, nil)
			},
		},
		{
			name: "user without email",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func() {
				user := validUser()
				user.Email = nil

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "alice", "", "employee").
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "ghost", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "alice", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "disabled user",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func() {
				user := validUser()
				user.Disabled = true

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("token generation failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	claims := &jwt.Claims{Username: "alice", Role: "client", Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "re-issues tokens with the stored role",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "alice", "alice@example.com", "employee").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(nil, errors.New("invalid token"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "disabled user cannot refresh",
			setupMock: func() {
				user := validUser()
				user.Disabled = true

				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "new-access-token", result.AccessToken)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	actorCtx := permissions.WithActor(context.Background(), permissions.Actor{Username: "alice", Role: permissions.RoleEmployee})

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful password change",
			ctx:  actorCtx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, "hashed_password")
						assert.NotEqual(t, passwordHash, fields["hashed_password"])

						return nil
					})
			},
		},
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "wrong current password",
			ctx:  actorCtx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user vanished",
			ctx:  actorCtx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(tt.ctx, tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
