package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/internal/domains/product/repository"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

// RoomStock keeps the per-room quantity of catalogue products.
type RoomStock interface {
	Add(ctx context.Context, roomID int64, req dto.StockProductRequest) (dto.RoomProductResponse, error)
	GetAll(ctx context.Context, roomID int64, req gDto.QueryParams, needsRestock *bool) (dto.GetRoomProductsResponse, error)
	Update(ctx context.Context, req dto.UpdateStockRequest, roomID, productID int64) error
	Remove(ctx context.Context, roomID, productID int64) error
}

type roomStockImpl struct {
	repo        repository.RoomProduct
	productRepo repository.Product
	roomRepo    roomRepo.Room
	policy      permissions.Policy
	otel        otel.Otel
}

func NewRoomStock(repo repository.RoomProduct, productRepo repository.Product, roomRepo roomRepo.Room,
	policy permissions.Policy, otel otel.Otel,
) RoomStock {
	return &roomStockImpl{
		repo:        repo,
		productRepo: productRepo,
		roomRepo:    roomRepo,
		policy:      policy,
		otel:        otel,
	}
}

func (s *roomStockImpl) Add(ctx context.Context, roomID int64, req dto.StockProductRequest) (res dto.RoomProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddRoomProduct")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorizeManage(ctx, roomID)
	if err != nil {
		return res, err
	}

	product, err := s.productRepo.Get(ctx, shared.FilterByID(req.ProductID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return res, fmt.Errorf("failed to get product: %w", err)
	}

	if product.ID == 0 {
		return res, failure.NotFound("product not found") // nolint:wrapcheck
	}

	stocked, err := s.repo.Exist(ctx, linkFilter(roomID, req.ProductID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room product existence")

		return res, fmt.Errorf("failed to check room product existence: %w", err)
	}

	if stocked {
		return res, failure.BadRequestFromString("product is already stocked in this room") // nolint:wrapcheck
	}

	stock := req.ToModel(roomID, actor.Username)

	if err = s.repo.Insert(ctx, stock); err != nil {
		log.Error().Err(err).Msg("failed to add product to room")

		return res, fmt.Errorf("failed to add product to room: %w", err)
	}

	stock.ProductName = product.Name
	stock.ProductPrice = product.Price

	res.FromModel(stock)

	return res, nil
}

// GetAll lists the products kept in a room, optionally only those flagged for restocking.
func (s *roomStockImpl) GetAll(ctx context.Context, roomID int64, req gDto.QueryParams, needsRestock *bool) (res dto.GetRoomProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomProducts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getRoom(ctx, roomID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(roomID, model.FieldRoomID, model.RoomTableName)
	if needsRestock != nil {
		filter.Filters = append(filter.Filters, gDto.Eq(model.RoomTableName, model.FieldNeedsRestock, *needsRestock))
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room products")

		return res, fmt.Errorf("failed to count room products: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room products")

		return res, fmt.Errorf("failed to get room products: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *roomStockImpl) Update(ctx context.Context, req dto.UpdateStockRequest, roomID, productID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomProduct")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorizeLink(ctx, roomID, productID)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room product")

		return fmt.Errorf("failed to update room product: %w", err)
	}

	return nil
}

func (s *roomStockImpl) Remove(ctx context.Context, roomID, productID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveRoomProduct")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorizeLink(ctx, roomID, productID)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove product from room")

		return fmt.Errorf("failed to remove product from room: %w", err)
	}

	return nil
}

func linkFilter(roomID, productID int64) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.RoomTableName, model.FieldRoomID, roomID),
		gDto.Eq(model.RoomTableName, model.FieldProductID, productID),
	)
}

func (s *roomStockImpl) getRoom(ctx context.Context, roomID int64) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *roomStockImpl) authorizeManage(ctx context.Context, roomID int64) (permissions.Actor, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, err //nolint:wrapcheck
	}

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return actor, err
	}

	if err := s.policy.ManageAccommodation(ctx, actor, room.AccommodationID); err != nil {
		return actor, err //nolint:wrapcheck
	}

	return actor, nil
}

func (s *roomStockImpl) authorizeLink(ctx context.Context, roomID, productID int64) (permissions.Actor, gDto.FilterGroup, error) {
	filter := linkFilter(roomID, productID)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room product existence")

		return permissions.Actor{}, filter, fmt.Errorf("failed to check room product existence: %w", err)
	}

	if !exists {
		return permissions.Actor{}, filter, failure.NotFound("product is not stocked in this room") // nolint:wrapcheck
	}

	actor, err := s.authorizeManage(ctx, roomID)

	return actor, filter, err
}
