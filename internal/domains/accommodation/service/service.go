package service

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/accommodation/model"
	"hostmaster/internal/domains/accommodation/model/dto"
	"hostmaster/internal/domains/accommodation/repository"
	locationModel "hostmaster/internal/domains/location/model"
	locationRepo "hostmaster/internal/domains/location/repository"
	reviewModel "hostmaster/internal/domains/review/model"
	reviewRepo "hostmaster/internal/domains/review/repository"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAccommodation    = "accommodation:get"
	cacheGetAllAccommodation = "accommodation:gets"
)

type Accommodation interface {
	Create(ctx context.Context, req dto.CreateAccommodationRequest) (dto.AccommodationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccommodationsResponse, error)
	Get(ctx context.Context, id int64) (dto.AccommodationResponse, error)
	Update(ctx context.Context, req dto.UpdateAccommodationRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo       repository.Accommodation
	memberRepo repository.Member
	cityRepo   locationRepo.City
	roomRepo   roomRepo.Room
	reviewRepo reviewRepo.Review
	transactor postgres.Transactor
	policy     permissions.Policy
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Accommodation,
	memberRepo repository.Member,
	cityRepo locationRepo.City,
	roomRepo roomRepo.Room,
	reviewRepo reviewRepo.Review,
	transactor postgres.Transactor,
	policy permissions.Policy,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Accommodation {
	return &serviceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		cityRepo:   cityRepo,
		roomRepo:   roomRepo,
		reviewRepo: reviewRepo,
		transactor: transactor,
		policy:     policy,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create stores the accommodation and associates its creator with it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccommodationRequest) (res dto.AccommodationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.CreateAccommodation(actor); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.checkCity(ctx, req.CityID); err != nil {
		return res, err
	}

	accommodation := req.ToModel(actor.Username)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		id, err := s.repo.InsertReturningIDTx(ctx, tx, accommodation)
		if err != nil {
			log.Error().Err(err).Msg("failed to create accommodation")

			return fmt.Errorf("failed to create accommodation: %w", err)
		}

		accommodation.ID = id

		member := model.Member{AccommodationID: id, Username: actor.Username}
		if err := s.memberRepo.InsertBulkTx(ctx, tx, []model.Member{member}); err != nil {
			log.Error().Err(err).Msg("failed to associate creator with accommodation")

			return fmt.Errorf("failed to associate creator with accommodation: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllAccommodation)
	}()

	res.FromModel(accommodation)
	res.UserUsernames = []string{actor.Username}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccommodationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	memberOnly, err := s.policy.ListAccommodations(actor)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if memberOnly {
		filter.Filters = append(filter.Filters, model.MemberOf(model.TableName, model.FieldID, actor.Username))
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAccommodation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for accommodations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accommodations")

		return res, fmt.Errorf("failed to count accommodations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodations")

		return res, fmt.Errorf("failed to get accommodations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save accommodations to cache")
		}
	}()

	return res, nil
}

// Get attaches the associated usernames only when the caller is staff.
func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.AccommodationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res, err = s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.policy.ViewAccommodation(ctx, actor, id); err != nil {
		return dto.AccommodationResponse{}, err //nolint:wrapcheck
	}

	if !s.policy.ViewStaff(actor) {
		return res, nil
	}

	res.UserUsernames, err = s.memberRepo.GetUsernames(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodation members")

		return dto.AccommodationResponse{}, fmt.Errorf("failed to get accommodation members: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (res dto.AccommodationResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetAccommodation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	accommodation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodation")

		return res, fmt.Errorf("failed to get accommodation: %w", err)
	}

	if accommodation.ID == 0 {
		return res, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	res.FromModel(accommodation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save accommodation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccommodationRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorizeManage(ctx, id)
	if err != nil {
		return err
	}

	if req.CityID != nil {
		if err = s.checkCity(ctx, *req.CityID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update accommodation")

		return fmt.Errorf("failed to update accommodation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses while rooms or reviews still reference the accommodation.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorizeManage(ctx, id)
	if err != nil {
		return err
	}

	hasRooms, err := s.roomRepo.Exist(ctx, shared.FilterByID(id, roomModel.FieldAccommodationID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check accommodation rooms")

		return fmt.Errorf("failed to check accommodation rooms: %w", err)
	}

	if hasRooms {
		return failure.BadRequestFromString("cannot delete an accommodation that still has rooms") // nolint:wrapcheck
	}

	hasReviews, err := s.reviewRepo.Exist(ctx, shared.FilterByID(id, reviewModel.FieldAccommodationID, reviewModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check accommodation reviews")

		return fmt.Errorf("failed to check accommodation reviews: %w", err)
	}

	if hasReviews {
		return failure.BadRequestFromString("cannot delete an accommodation that still has reviews") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete accommodation")

		return fmt.Errorf("failed to delete accommodation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) authorizeManage(ctx context.Context, id int64) (permissions.Actor, gDto.FilterGroup, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check accommodation existence")

		return actor, filter, fmt.Errorf("failed to check accommodation existence: %w", err)
	}

	if !exists {
		return actor, filter, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageAccommodation(ctx, actor, id); err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	return actor, filter, nil
}

func (s *serviceImpl) checkCity(ctx context.Context, cityID int64) error {
	exists, err := s.cityRepo.Exist(ctx, shared.FilterByID(cityID, locationModel.FieldID, locationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check city existence")

		return fmt.Errorf("failed to check city existence: %w", err)
	}

	if !exists {
		return failure.BadRequestFromString("city not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAccommodation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete accommodation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccommodation)
	}()
}
