package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostmaster/config"
	otelMocks "hostmaster/infras/otel/mocks"
	postgresMocks "hostmaster/infras/postgres/mocks"
	"hostmaster/internal/domains/accommodation/mocks"
	"hostmaster/internal/domains/accommodation/model"
	"hostmaster/internal/domains/accommodation/model/dto"
	"hostmaster/internal/domains/accommodation/service"
	locationMocks "hostmaster/internal/domains/location/mocks"
	reviewMocks "hostmaster/internal/domains/review/mocks"
	roomMocks "hostmaster/internal/domains/room/mocks"
	"hostmaster/permissions"
	cacheMocks "hostmaster/shared/cache/mocks"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

type fixture struct {
	repo       *mocks.MockAccommodation
	memberRepo *mocks.MockMember
	cityRepo   *locationMocks.MockCity
	roomRepo   *roomMocks.MockRoom
	reviewRepo *reviewMocks.MockReview
	cache      *cacheMocks.MockRedisCache
	svc        service.Accommodation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:       mocks.NewMockAccommodation(ctrl),
		memberRepo: mocks.NewMockMember(ctrl),
		cityRepo:   locationMocks.NewMockCity(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		reviewRepo: reviewMocks.NewMockReview(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	transactor := postgresMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	// cache writes happen in background goroutines
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	policy := permissions.NewPolicy(f.memberRepo)

	f.svc = service.New(f.repo, f.memberRepo, f.cityRepo, f.roomRepo, f.reviewRepo, transactor, policy, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func as(username string, role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: username, Role: role})
}

func TestCreate(t *testing.T) {
	req := dto.CreateAccommodationRequest{Name: "Harbour Inn", CityID: 4}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:      "clients cannot create",
			ctx:       as("carl", permissions.RoleClient),
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "unknown city",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.cityRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "member insert fails",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.cityRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(9), nil)
				f.memberRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(tt.ctx, req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}

	t.Run("creator becomes a member", func(t *testing.T) {
		f := newFixture(t)
		f.cityRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(9), nil)
		f.memberRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), []model.Member{{AccommodationID: 9, Username: "erin"}}).
			Return(nil)

		res, err := f.svc.Create(as("erin", permissions.RoleEmployee), req)
		require.NoError(t, err)
		assert.Equal(t, int64(9), res.ID)
		assert.Equal(t, "Harbour Inn", res.Name)
		assert.Equal(t, []string{"erin"}, res.UserUsernames)
	})
}

func TestGetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("employees only see their accommodations", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))

		var counted gDto.FilterGroup
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				counted = filter

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Accommodation{{ID: 2, Name: "Dune"}}, nil)

		res, err := f.svc.GetAll(as("erin", permissions.RoleEmployee), params, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		require.Len(t, res.Accommodations, 1)
		require.Len(t, counted.Filters, 1)
		assert.Equal(t, map[string]any{"member_username": "erin"}, counted.Filters[0].Args)
	})

	t.Run("admins see everything", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gDto.FilterGroup{}).Return(0, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetAll(as("root", permissions.RoleAdmin), params, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalData)
	})
}

func TestGet(t *testing.T) {
	stored := model.Accommodation{ID: 2, Name: "Dune", CityID: 4}

	t.Run("staff see associated usernames", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		f.memberRepo.EXPECT().GetUsernames(gomock.Any(), int64(2)).Return([]string{"erin", "otto"}, nil)

		res, err := f.svc.Get(as("root", permissions.RoleAdmin), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"erin", "otto"}, res.UserUsernames)
	})

	t.Run("clients do not", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		res, err := f.svc.Get(as("carl", permissions.RoleClient), 2)
		require.NoError(t, err)
		assert.Equal(t, "Dune", res.Name)
		assert.Empty(t, res.UserUsernames)
	})

	t.Run("employees outside the accommodation are refused", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(false, nil)

		_, err := f.svc.Get(as("erin", permissions.RoleEmployee), 2)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Accommodation{}, nil)

		_, err := f.svc.Get(as("root", permissions.RoleAdmin), 2)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "missing",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "employee not associated",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "still has rooms",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "still has reviews",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.reviewRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "deleted",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(true, nil)
				f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.reviewRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(tt.ctx, 2)
			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
