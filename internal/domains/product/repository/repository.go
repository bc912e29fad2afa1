package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/product/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

type Product interface {
	InsertReturningID(ctx context.Context, model model.Product) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Product, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Product, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Product]
}

func New(db *postgres.Connection, otl otel.Otel) Product {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Product](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
