package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	accommodationModel "hostmaster/internal/domains/accommodation/model"
	accommodationRepo "hostmaster/internal/domains/accommodation/repository"
	"hostmaster/internal/domains/user/model"
	"hostmaster/internal/domains/user/model/dto"
	"hostmaster/internal/domains/user/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
	"hostmaster/shared/password"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, username string) (dto.UserResponse, error)
	Me(ctx context.Context) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, username string) error
	Delete(ctx context.Context, username string) error
}

type serviceImpl struct {
	repo              repository.User
	memberRepo        accommodationRepo.Member
	accommodationRepo accommodationRepo.Accommodation
	transactor        postgres.Transactor
	policy            permissions.Policy
	cfg               *config.Config
	cache             cache.RedisCache
	otel              otel.Otel
}

func New(
	repo repository.User,
	memberRepo accommodationRepo.Member,
	accommodationRepo accommodationRepo.Accommodation,
	transactor postgres.Transactor,
	policy permissions.Policy,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) User {
	return &serviceImpl{
		repo:              repo,
		memberRepo:        memberRepo,
		accommodationRepo: accommodationRepo,
		transactor:        transactor,
		policy:            policy,
		cfg:               cfg,
		cache:             cache,
		otel:              otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	exists, err := s.repo.Exist(ctx, shared.FilterByID(req.Username, model.FieldUsername, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("username already registered") // nolint:wrapcheck
	}

	if err = s.checkAccommodations(ctx, req.AccommodationIDs); err != nil {
		return err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, req.ToModel(actor.Username, hashedPassword)); err != nil {
			log.Error().Err(err).Msg("failed to create user")

			return fmt.Errorf("failed to create user: %w", err)
		}

		return s.insertMembers(ctx, tx, req.Username, req.AccommodationIDs)
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.authorize(ctx); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, username string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.authorize(ctx); err != nil {
		return res, err
	}

	return s.get(ctx, username)
}

// Me returns the profile of the authenticated caller.
func (s *serviceImpl) Me(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.get(ctx, actor.Username)
}

func (s *serviceImpl) get(ctx context.Context, username string) (res dto.UserResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetUser, username)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(username, model.FieldUsername, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Username == "" {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	accommodationIDs, err := s.memberRepo.GetAccommodationIDs(ctx, username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user accommodations")

		return res, fmt.Errorf("failed to get user accommodations: %w", err)
	}

	res.FromModel(user, accommodationIDs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, username string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(username, model.FieldUsername, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check user existence")

		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if !exists {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if req.AccommodationIDs != nil {
		if err = s.checkAccommodations(ctx, *req.AccommodationIDs); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, actor.Username)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update user")

			return fmt.Errorf("failed to update user: %w", err)
		}

		if req.AccommodationIDs == nil {
			return nil
		}

		memberFilter := shared.FilterByID(username, accommodationModel.FieldUsername, accommodationModel.MemberTableName)
		if err := s.memberRepo.DeleteTx(ctx, tx, memberFilter); err != nil {
			log.Error().Err(err).Msg("failed to clear user accommodations")

			return fmt.Errorf("failed to clear user accommodations: %w", err)
		}

		return s.insertMembers(ctx, tx, username, *req.AccommodationIDs)
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.invalidate(ctx, username)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, username string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	if actor.Username == username {
		return failure.BadRequestFromString("admins cannot delete their own account") // nolint:wrapcheck
	}

	filter := shared.FilterByID(username, model.FieldUsername, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check user existence")

		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if !exists {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, username)

	return nil
}

func (s *serviceImpl) authorize(ctx context.Context) (permissions.Actor, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, err //nolint:wrapcheck
	}

	if err := s.policy.ManageUsers(actor); err != nil {
		return actor, err //nolint:wrapcheck
	}

	return actor, nil
}

func (s *serviceImpl) checkAccommodations(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	unique := slices.Compact(slices.Sorted(slices.Values(ids)))

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    accommodationModel.FieldID,
				Value:    unique,
				Operator: gDto.FilterOperatorIn,
				Table:    accommodationModel.TableName,
			},
		},
	}

	count, err := s.accommodationRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accommodations")

		return fmt.Errorf("failed to count accommodations: %w", err)
	}

	if count != len(unique) {
		return failure.BadRequestFromString("one or more accommodations do not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) insertMembers(ctx context.Context, tx *sqlx.Tx, username string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	unique := slices.Compact(slices.Sorted(slices.Values(ids)))

	members := make([]accommodationModel.Member, len(unique))
	for i, id := range unique {
		members[i] = accommodationModel.Member{AccommodationID: id, Username: username}
	}

	if err := s.memberRepo.InsertBulkTx(ctx, tx, members); err != nil {
		log.Error().Err(err).Msg("failed to associate user with accommodations")

		return fmt.Errorf("failed to associate user with accommodations: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, username string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, username)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
