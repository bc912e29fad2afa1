package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hostmaster/infras/otel/mocks"
	accommodationMocks "hostmaster/internal/domains/accommodation/mocks"
	"hostmaster/internal/domains/inventory/mocks"
	"hostmaster/internal/domains/inventory/model"
	"hostmaster/internal/domains/inventory/model/dto"
	"hostmaster/internal/domains/inventory/service"
	roomMocks "hostmaster/internal/domains/room/mocks"
	roomModel "hostmaster/internal/domains/room/model"
	"hostmaster/permissions"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

type fixture struct {
	repo       *mocks.MockInventoryItem
	roomRepo   *roomMocks.MockRoom
	memberRepo *accommodationMocks.MockMember
	svc        service.Inventory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:       mocks.NewMockInventoryItem(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		memberRepo: accommodationMocks.NewMockMember(ctrl),
	}

	f.svc = service.New(f.repo, f.roomRepo, permissions.NewPolicy(f.memberRepo), otelMocks.NewOtel())

	return f
}

func as(username string, role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: username, Role: role})
}

var room = roomModel.Room{ID: 7, AccommodationID: 2}

func TestCreate(t *testing.T) {
	req := dto.CreateInventoryItemRequest{Name: "Towel", Quantity: 4}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "room missing",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "clients cannot",
			ctx:  as("carl", permissions.RoleClient),
			setupMock: func(f *fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "employee of another accommodation",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "associated employee",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(true, nil)
				f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item model.InventoryItem) (int64, error) {
						assert.Equal(t, int64(7), item.RoomID)

						return 30, nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, 7, req)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, int64(30), res.ID)
				assert.Equal(t, 4, res.Quantity)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestGetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f := newFixture(t)
	f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.InventoryItem{{ID: 30, RoomID: 7, Name: "Towel"}}, nil)

	res, err := f.svc.GetAll(as("carl", permissions.RoleClient), 7, params)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
}

func TestDelete(t *testing.T) {
	t.Run("item not in room", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(as("root", permissions.RoleAdmin), 7, 30)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(as("root", permissions.RoleAdmin), 7, 30))
	})
}
