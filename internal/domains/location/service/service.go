package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/location/model"
	"hostmaster/internal/domains/location/model/dto"
	"hostmaster/internal/domains/location/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCity    = "city:get"
	cacheGetAllCity = "city:gets"
)

type Location interface {
	CreateCity(ctx context.Context, req dto.CreateCityRequest) (dto.CityResponse, error)
	GetCities(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCitiesResponse, error)
	GetCity(ctx context.Context, id int64) (dto.CityResponse, error)
}

type serviceImpl struct {
	repo   repository.City
	policy permissions.Policy
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(repo repository.City, policy permissions.Policy, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Location {
	return &serviceImpl{
		repo:   repo,
		policy: policy,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) CreateCity(ctx context.Context, req dto.CreateCityRequest) (res dto.CityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.ManageLocations(actor); err != nil {
		return res, err //nolint:wrapcheck
	}

	city := req.ToModel(actor.Username)

	city.ID, err = s.repo.InsertReturningID(ctx, city)
	if err != nil {
		log.Error().Err(err).Msg("failed to create city")

		return res, fmt.Errorf("failed to create city: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllCity)
	}()

	res.FromModel(city)

	return res, nil
}

func (s *serviceImpl) GetCities(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCities")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCity, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cities")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cities")

		return res, fmt.Errorf("failed to count cities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cities")

		return res, fmt.Errorf("failed to get cities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetCity(ctx context.Context, id int64) (res dto.CityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCity, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	city, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get city")

		return res, fmt.Errorf("failed to get city: %w", err)
	}

	if city.ID == 0 {
		return res, failure.NotFound("city not found") // nolint:wrapcheck
	}

	res.FromModel(city)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save city to cache")
		}
	}()

	return res, nil
}
