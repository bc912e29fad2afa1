package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/extraservice/model"
	"hostmaster/internal/domains/extraservice/model/dto"
	"hostmaster/internal/domains/extraservice/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetExtraService    = "extraservice:get"
	cacheGetAllExtraService = "extraservice:gets"
)

type ExtraService interface {
	Create(ctx context.Context, req dto.CreateExtraServiceRequest) (dto.ExtraServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExtraServicesResponse, error)
	Get(ctx context.Context, id int64) (dto.ExtraServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateExtraServiceRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo   repository.ExtraService
	policy permissions.Policy
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(repo repository.ExtraService, policy permissions.Policy, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) ExtraService {
	return &serviceImpl{
		repo:   repo,
		policy: policy,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExtraServiceRequest) (res dto.ExtraServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.CreateExtraService(actor); err != nil {
		return res, err //nolint:wrapcheck
	}

	extra := req.ToModel(actor.Username)

	extra.ID, err = s.repo.InsertReturningID(ctx, extra)
	if err != nil {
		log.Error().Err(err).Msg("failed to create extra service")

		return res, fmt.Errorf("failed to create extra service: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllExtraService)
	}()

	res.FromModel(extra)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExtraServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExtraService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for extra services")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count extra services")

		return res, fmt.Errorf("failed to count extra services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get extra services")

		return res, fmt.Errorf("failed to get extra services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save extra services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ExtraServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetExtraService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	extra, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get extra service")

		return res, fmt.Errorf("failed to get extra service: %w", err)
	}

	if extra.ID == 0 {
		return res, failure.NotFound("extra service not found") // nolint:wrapcheck
	}

	res.FromModel(extra)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save extra service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExtraServiceRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update extra service")

		return fmt.Errorf("failed to update extra service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete relies on the reservation link foreign key to refuse booked services.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete extra service")

		return fmt.Errorf("failed to delete extra service: %w", err)
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
		log.Error().Err(err).Msg("failed to check extra service existence")

		return actor, filter, fmt.Errorf("failed to check extra service existence: %w", err)
	}

	if !exists {
		return actor, filter, failure.NotFound("extra service not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageExtraService(actor); err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	return actor, filter, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExtraService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete extra service from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExtraService)
	}()
}
