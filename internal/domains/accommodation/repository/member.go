package repository

//go:generate go run go.uber.org/mock/mockgen -source=./member.go -destination=../mocks/member_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/internal/domains/accommodation/model"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	gRepo "hostmaster/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Member stores the accommodation_users associations.
type Member interface {
	IsMember(ctx context.Context, accommodationID int64, username string) (bool, error)
	GetUsernames(ctx context.Context, accommodationID int64) ([]string, error)
	GetAccommodationIDs(ctx context.Context, username string) ([]int64, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Member) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type memberRepositoryImpl struct {
	gRepo.Repository[model.Member]
	otel otel.Otel
}

func NewMember(db *postgres.Connection, otel otel.Otel) Member {
	return &memberRepositoryImpl{
		Repository: gRepo.NewRepository[model.Member](model.MemberEntityName, model.MemberTableName, model.FieldAccommodationID, db, otel),
		otel:       otel,
	}
}

func (r *memberRepositoryImpl) IsMember(ctx context.Context, accommodationID int64, username string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".member.IsMember")
	defer scope.End()

	return r.Exist(ctx, gDto.And( //nolint:wrapcheck
		gDto.Eq(model.MemberTableName, model.FieldAccommodationID, accommodationID),
		gDto.Eq(model.MemberTableName, model.FieldUsername, username),
	))
}

func (r *memberRepositoryImpl) GetUsernames(ctx context.Context, accommodationID int64) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".member.GetUsernames")
	defer scope.End()

	members, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldUsername, SortDir: gDto.SortDirAsc},
		shared.FilterByID(accommodationID, model.FieldAccommodationID, model.MemberTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get accommodation members: %w", err)
	}

	usernames := make([]string, len(members))
	for i, member := range members {
		usernames[i] = member.Username
	}

	return usernames, nil
}

func (r *memberRepositoryImpl) GetAccommodationIDs(ctx context.Context, username string) ([]int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".member.GetAccommodationIDs")
	defer scope.End()

	members, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldAccommodationID, SortDir: gDto.SortDirAsc},
		shared.FilterByID(username, model.FieldUsername, model.MemberTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get user accommodations: %w", err)
	}

	ids := make([]int64, len(members))
	for i, member := range members {
		ids[i] = member.AccommodationID
	}

	return ids, nil
}
