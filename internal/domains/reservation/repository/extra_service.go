package repository

//go:generate go run go.uber.org/mock/mockgen -source=./extra_service.go -destination=../mocks/extra_service_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/reservation/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

type ExtraService interface {
	Insert(ctx context.Context, model model.ExtraService) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExtraService, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type extraServiceRepositoryImpl struct {
	gRepo.Repository[model.ExtraService]
}

func NewExtraService(db *postgres.Connection, otl otel.Otel) ExtraService {
	return &extraServiceRepositoryImpl{
		Repository: gRepo.NewRepository[model.ExtraService](model.ExtraServiceEntityName, model.ExtraServiceTableName, model.FieldReservationID, db, otl),
	}
}
