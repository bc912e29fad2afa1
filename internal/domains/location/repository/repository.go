package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/location/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

type City interface {
	InsertReturningID(ctx context.Context, model model.City) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.City, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.City, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.City]
}

func New(db *postgres.Connection, otl otel.Otel) City {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.City](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
