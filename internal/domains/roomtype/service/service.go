package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	"hostmaster/internal/domains/roomtype/model"
	"hostmaster/internal/domains/roomtype/model/dto"
	"hostmaster/internal/domains/roomtype/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomType    = "roomtype:get"
	cacheGetAllRoomType = "roomtype:gets"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) (dto.RoomTypeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomTypesResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo     repository.RoomType
	roomRepo roomRepo.Room
	policy   permissions.Policy
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.RoomType, roomRepo roomRepo.Room, policy permissions.Policy, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomType {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		policy:   policy,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.ManageRoomTypes(actor); err != nil {
		return res, err //nolint:wrapcheck
	}

	roomType := req.ToModel(actor.Username)

	roomType.ID, err = s.repo.InsertReturningID(ctx, roomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllRoomType)
	}()

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoomType, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	roomType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(roomType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses while any room still uses the type.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.roomRepo.Exist(ctx, shared.FilterByID(id, roomModel.FieldTypeID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room type usage")

		return fmt.Errorf("failed to check room type usage: %w", err)
	}

	if inUse {
		return failure.BadRequestFromString("cannot delete a room type that is used by rooms") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) authorize(ctx context.Context, id int64) (permissions.Actor, gDto.FilterGroup, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room type existence")

		return actor, filter, fmt.Errorf("failed to check room type existence: %w", err)
	}

	if !exists {
		return actor, filter, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageRoomTypes(actor); err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	return actor, filter, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoomType, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room type from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
	}()
}
