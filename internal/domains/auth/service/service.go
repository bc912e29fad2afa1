package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/jwt"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/auth/model/dto"
	userModel "hostmaster/internal/domains/user/model"
	userRepo "hostmaster/internal/domains/user/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	"hostmaster/shared/failure"
	"hostmaster/shared/password"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("username already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Username == "" {
		log.Warn().Str("username", req.Username).Msg("login attempt with non-existent username")

		return res, failure.BadRequestFromString("invalid username or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.HashedPassword); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid username or password") // nolint:wrapcheck
	}

	if user.Disabled {
		return res, failure.BadRequestFromString("user account is disabled") // nolint:wrapcheck
	}

	tokenPair, err := s.generateTokens(ctx, user)
	if err != nil {
		return res, err
	}

	return dto.NewTokenResponse(tokenPair), nil
}

// RefreshToken issues a new pair with the user's current role. Disabled or
// deleted users cannot refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Username == "" || user.Disabled {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	tokenPair, err := s.generateTokens(ctx, user)
	if err != nil {
		return res, err
	}

	return dto.NewTokenResponse(tokenPair), nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	filter := shared.FilterByID(actor.Username, userModel.FieldUsername, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Username == "" {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.HashedPassword); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.PasswordUpdate{HashedPassword: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, actor.Username)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) generateTokens(ctx context.Context, user userModel.User) (*jwt.TokenPair, error) {
	email := ""
	if user.HasEmail() {
		email = *user.Email
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.Username, email, user.Role.String())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokenPair, nil
}
