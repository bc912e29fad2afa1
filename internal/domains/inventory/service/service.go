package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/inventory/model"
	"hostmaster/internal/domains/inventory/model/dto"
	"hostmaster/internal/domains/inventory/repository"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

type Inventory interface {
	Create(ctx context.Context, roomID int64, req dto.CreateInventoryItemRequest) (dto.InventoryItemResponse, error)
	GetAll(ctx context.Context, roomID int64, req gDto.QueryParams) (dto.GetInventoryResponse, error)
	Update(ctx context.Context, req dto.UpdateInventoryItemRequest, roomID, itemID int64) error
	Delete(ctx context.Context, roomID, itemID int64) error
}

type serviceImpl struct {
	repo     repository.InventoryItem
	roomRepo roomRepo.Room
	policy   permissions.Policy
	otel     otel.Otel
}

func New(repo repository.InventoryItem, roomRepo roomRepo.Room, policy permissions.Policy, otel otel.Otel) Inventory {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		policy:   policy,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, roomID int64, req dto.CreateInventoryItemRequest) (res dto.InventoryItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := s.authorizeManage(ctx, roomID)
	if err != nil {
		return res, err
	}

	item := req.ToModel(roomID, actor.Username)

	item.ID, err = s.repo.InsertReturningID(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create inventory item")

		return res, fmt.Errorf("failed to create inventory item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, roomID int64, req gDto.QueryParams) (res dto.GetInventoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getRoom(ctx, roomID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(roomID, model.FieldRoomID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inventory items")

		return res, fmt.Errorf("failed to count inventory items: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory items")

		return res, fmt.Errorf("failed to get inventory items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInventoryItemRequest, roomID, itemID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, filter, err := s.authorizeItem(ctx, roomID, itemID)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), filter); err != nil {
		log.Error().Err(err).Msg("failed to update inventory item")

		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, roomID, itemID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, filter, err := s.authorizeItem(ctx, roomID, itemID)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete inventory item")

		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

func (s *serviceImpl) getRoom(ctx context.Context, roomID int64) (roomModel.Room, error) {
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

func (s *serviceImpl) authorizeManage(ctx context.Context, roomID int64) (permissions.Actor, error) {
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

// authorizeItem resolves an item that must belong to the room before checking permissions.
func (s *serviceImpl) authorizeItem(ctx context.Context, roomID, itemID int64) (permissions.Actor, gDto.FilterGroup, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: itemID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check inventory item existence")

		return permissions.Actor{}, filter, fmt.Errorf("failed to check inventory item existence: %w", err)
	}

	if !exists {
		return permissions.Actor{}, filter, failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	actor, err := s.authorizeManage(ctx, roomID)

	return actor, filter, err
}
