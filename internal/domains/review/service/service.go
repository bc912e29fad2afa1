package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	accommodationModel "hostmaster/internal/domains/accommodation/model"
	accommodationRepo "hostmaster/internal/domains/accommodation/repository"
	"hostmaster/internal/domains/review/model"
	"hostmaster/internal/domains/review/model/dto"
	"hostmaster/internal/domains/review/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	Get(ctx context.Context, id int64) (dto.ReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo              repository.Review
	accommodationRepo accommodationRepo.Accommodation
	policy            permissions.Policy
	otel              otel.Otel
}

func New(repo repository.Review, accommodationRepo accommodationRepo.Accommodation, policy permissions.Policy, otel otel.Otel) Review {
	return &serviceImpl{
		repo:              repo,
		accommodationRepo: accommodationRepo,
		policy:            policy,
		otel:              otel,
	}
}

// Create allows a single review per user and accommodation.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	exists, err := s.accommodationRepo.Exist(ctx, shared.FilterByID(req.AccommodationID, accommodationModel.FieldID, accommodationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check accommodation existence")

		return res, fmt.Errorf("failed to check accommodation existence: %w", err)
	}

	if !exists {
		return res, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	reviewed, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAccommodationID, Value: req.AccommodationID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldUserUsername, Value: actor.Username, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return res, fmt.Errorf("failed to check existing review: %w", err)
	}

	if reviewed {
		return res, failure.Conflict("you have already reviewed this accommodation") // nolint:wrapcheck
	}

	review := req.ToModel(actor.Username)

	review.ID, err = s.repo.InsertReturningID(ctx, review)
	if err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.authorize(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == 0 {
		return review, failure.NotFound("review not found") // nolint:wrapcheck
	}

	return review, nil
}

func (s *serviceImpl) authorize(ctx context.Context, id int64) (permissions.Actor, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, err //nolint:wrapcheck
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return actor, err
	}

	if err := s.policy.ManageReview(actor, review.UserUsername); err != nil {
		return actor, err //nolint:wrapcheck
	}

	return actor, nil
}
