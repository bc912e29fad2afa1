package repository

//go:generate go run go.uber.org/mock/mockgen -source=./detail.go -destination=../mocks/detail_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/reservation/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

// Detail reads reservations joined with their guest, room and accommodation.
type Detail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Detail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Detail, error)
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.Detail]
}

func NewDetail(db *postgres.Connection, otl otel.Otel) Detail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.Detail](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
