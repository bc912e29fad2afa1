package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/internal/domains/product/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

type Product interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (dto.ProductResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProductsResponse, error)
	Get(ctx context.Context, id int64) (dto.ProductResponse, error)
	Update(ctx context.Context, req dto.UpdateProductRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo   repository.Product
	policy permissions.Policy
	otel   otel.Otel
}

func New(repo repository.Product, policy permissions.Policy, otel otel.Otel) Product {
	return &serviceImpl{
		repo:   repo,
		policy: policy,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProductRequest) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.ManageProducts(actor); err != nil {
		return res, err //nolint:wrapcheck
	}

	product := req.ToModel(actor.Username)

	product.ID, err = s.repo.InsertReturningID(ctx, product)
	if err != nil {
		log.Error().Err(err).Msg("failed to create product")

		return res, fmt.Errorf("failed to create product: %w", err)
	}

	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, fmt.Errorf("failed to count products: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, fmt.Errorf("failed to get products: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	product, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return res, fmt.Errorf("failed to get product: %w", err)
	}

	if product.ID == 0 {
		return res, failure.NotFound("product not found") // nolint:wrapcheck
	}

	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProductRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update product")

		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete relies on the room stock foreign key to refuse products still kept in a room.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete product")

		return fmt.Errorf("failed to delete product: %w", err)
	}

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
		log.Error().Err(err).Msg("failed to check product existence")

		return actor, filter, fmt.Errorf("failed to check product existence: %w", err)
	}

	if !exists {
		return actor, filter, failure.NotFound("product not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageProducts(actor); err != nil {
		return actor, filter, err //nolint:wrapcheck
	}

	return actor, filter, nil
}
