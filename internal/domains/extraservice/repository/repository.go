package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/extraservice/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

type ExtraService interface {
	InsertReturningID(ctx context.Context, model model.ExtraService) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExtraService, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExtraService, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ExtraService]
}

func New(db *postgres.Connection, otl otel.Otel) ExtraService {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ExtraService](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
