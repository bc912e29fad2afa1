package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostmaster/config"
	otelMocks "hostmaster/infras/otel/mocks"
	roomMocks "hostmaster/internal/domains/room/mocks"
	"hostmaster/internal/domains/roomtype/mocks"
	"hostmaster/internal/domains/roomtype/model"
	"hostmaster/internal/domains/roomtype/model/dto"
	"hostmaster/internal/domains/roomtype/service"
	"hostmaster/permissions"
	cacheMocks "hostmaster/shared/cache/mocks"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

type fixture struct {
	repo     *mocks.MockRoomType
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	svc      service.RoomType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     mocks.NewMockRoomType(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.roomRepo, permissions.NewPolicy(nil), cfg, f.cache, otelMocks.NewOtel())

	return f
}

func as(role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: "vera", Role: role})
}

func TestCreate(t *testing.T) {
	req := dto.CreateRoomTypeRequest{Name: "Suite", MaxGuests: 4}

	t.Run("only admins", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(as(permissions.RoleEmployee), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, roomType model.RoomType) (int64, error) {
				assert.Equal(t, "vera", roomType.CreatedBy)

				return 5, nil
			})

		res, err := f.svc.Create(as(permissions.RoleAdmin), req)
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.ID)
		assert.Equal(t, 4, res.MaxGuests)
	})
}

func TestGet(t *testing.T) {
	t.Run("served from cache", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "roomtype:get:3", gomock.Any()).Return(nil)

		_, err := f.svc.Get(as(permissions.RoleClient), 3)
		require.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)

		_, err := f.svc.Get(as(permissions.RoleClient), 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUpdate(t *testing.T) {
	name := "Deluxe"
	req := dto.UpdateRoomTypeRequest{Name: &name}

	tests := []struct {
		name      string
		role      permissions.Role
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "missing",
			role: permissions.RoleAdmin,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "employees cannot",
			role: permissions.RoleEmployee,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "updated",
			role: permissions.RoleAdmin,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &name, fields["name"])
						assert.Equal(t, "vera", fields["modified_by"])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(as(tt.role), req, 3)
			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("refused while rooms use the type", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Delete(as(permissions.RoleAdmin), 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(as(permissions.RoleAdmin), 3))
	})
}
