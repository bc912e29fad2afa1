package repository

//go:generate go run go.uber.org/mock/mockgen -source=./room_product.go -destination=../mocks/room_product_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/product/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

// RoomProduct is keyed by (room_id, product_id). Count and default ordering use product_id.
type RoomProduct interface {
	Insert(ctx context.Context, model model.RoomProduct) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomProduct, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type roomProductRepositoryImpl struct {
	gRepo.Repository[model.RoomProduct]
}

func NewRoomProduct(db *postgres.Connection, otl otel.Otel) RoomProduct {
	return &roomProductRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomProduct](model.RoomEntityName, model.RoomTableName, model.FieldProductID, db, otl),
	}
}
