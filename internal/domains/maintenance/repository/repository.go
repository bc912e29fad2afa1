package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/maintenance/model"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"
)

type MaintenanceRequest interface {
	InsertReturningID(ctx context.Context, model model.MaintenanceRequest) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MaintenanceRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MaintenanceRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.MaintenanceRequest]
}

func New(db *postgres.Connection, otl otel.Otel) MaintenanceRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.MaintenanceRequest](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
