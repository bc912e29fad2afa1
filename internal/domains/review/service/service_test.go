package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hostmaster/infras/otel/mocks"
	accommodationMocks "hostmaster/internal/domains/accommodation/mocks"
	"hostmaster/internal/domains/review/mocks"
	"hostmaster/internal/domains/review/model"
	"hostmaster/internal/domains/review/model/dto"
	"hostmaster/internal/domains/review/service"
	"hostmaster/permissions"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

func setup(t *testing.T) (*mocks.MockReview, *accommodationMocks.MockAccommodation, service.Review) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := mocks.NewMockReview(ctrl)
	accommodationRepo := accommodationMocks.NewMockAccommodation(ctrl)
	policy := permissions.NewPolicy(accommodationMocks.NewMockMember(ctrl))

	return repo, accommodationRepo, service.New(repo, accommodationRepo, policy, otelMocks.NewOtel())
}

func as(username string, role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: username, Role: role})
}

func TestReview_Create(t *testing.T) {
	req := dto.CreateReviewRequest{AccommodationID: 4, Rating: 5}

	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockReview, accommodationRepo *accommodationMocks.MockAccommodation)
		code      int
	}{
		{
			name: "success",
			setupMock: func(repo *mocks.MockReview, accommodationRepo *accommodationMocks.MockAccommodation) {
				accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "carl", args[model.FieldUserUsername])
						assert.Equal(t, int64(4), args[model.FieldAccommodationID])

						return false, nil
					})
				repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(9), nil)
			},
		},
		{
			name: "accommodation not found",
			setupMock: func(_ *mocks.MockReview, accommodationRepo *accommodationMocks.MockAccommodation) {
				accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "already reviewed",
			setupMock: func(repo *mocks.MockReview, accommodationRepo *accommodationMocks.MockAccommodation) {
				accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			code: http.StatusConflict,
		},
		{
			name: "insert failure",
			setupMock: func(repo *mocks.MockReview, accommodationRepo *accommodationMocks.MockAccommodation) {
				accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, accommodationRepo, svc := setup(t)
			tt.setupMock(repo, accommodationRepo)

			res, err := svc.Create(as("carl", permissions.RoleClient), req)

			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(9), res.ID)
			assert.Equal(t, "carl", res.UserUsername)
		})
	}
}

func TestReview_Ownership(t *testing.T) {
	stored := model.Review{ID: 9, AccommodationID: 4, UserUsername: "carl", Rating: 4}
	rating := 2

	tests := []struct {
		name    string
		ctx     context.Context
		allowed bool
	}{
		{name: "author", ctx: as("carl", permissions.RoleClient), allowed: true},
		{name: "admin", ctx: as("root", permissions.RoleAdmin), allowed: true},
		{name: "another client", ctx: as("dana", permissions.RoleClient), allowed: false},
		{name: "employee", ctx: as("erin", permissions.RoleEmployee), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name+" update", func(t *testing.T) {
			repo, _, svc := setup(t)

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

			if tt.allowed {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Update(tt.ctx, dto.UpdateReviewRequest{Rating: &rating}, 9)

			if tt.allowed {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		})

		t.Run(tt.name+" delete", func(t *testing.T) {
			repo, _, svc := setup(t)

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

			if tt.allowed {
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Delete(tt.ctx, 9)

			if tt.allowed {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		})
	}
}

func TestReview_NotFound(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)

	_, err := svc.Get(as("carl", permissions.RoleClient), 404)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
