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
	"hostmaster/internal/domains/product/mocks"
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/internal/domains/product/service"
	roomMocks "hostmaster/internal/domains/room/mocks"
	roomModel "hostmaster/internal/domains/room/model"
	"hostmaster/permissions"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

type stockFixture struct {
	repo        *mocks.MockRoomProduct
	productRepo *mocks.MockProduct
	roomRepo    *roomMocks.MockRoom
	memberRepo  *accommodationMocks.MockMember
	svc         service.RoomStock
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &stockFixture{
		repo:        mocks.NewMockRoomProduct(ctrl),
		productRepo: mocks.NewMockProduct(ctrl),
		roomRepo:    roomMocks.NewMockRoom(ctrl),
		memberRepo:  accommodationMocks.NewMockMember(ctrl),
	}

	f.svc = service.NewRoomStock(f.repo, f.productRepo, f.roomRepo, permissions.NewPolicy(f.memberRepo), otelMocks.NewOtel())

	return f
}

var (
	room    = roomModel.Room{ID: 7, AccommodationID: 2}
	product = model.Product{ID: 9, Name: "Sparkling water", Price: 2.5}
)

func TestRoomStock_Add(t *testing.T) {
	req := dto.StockProductRequest{ProductID: 9, Quantity: 6}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *stockFixture)
		wantCode  int
	}{
		{
			name: "clients cannot",
			ctx:  as("carl", permissions.RoleClient),
			setupMock: func(f *stockFixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown product",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *stockFixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.productRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "already stocked",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *stockFixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.productRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(product, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "associated employee",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *stockFixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(true, nil)
				f.productRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(product, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, stock model.RoomProduct) error {
						assert.Equal(t, int64(7), stock.RoomID)
						assert.Equal(t, 6, stock.Quantity)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStockFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Add(tt.ctx, 7, req)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Sparkling water", res.ProductName)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestRoomStock_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}
	restock := true

	f := newStockFixture(t)
	f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Len(t, filter.Filters, 2)
			assert.Equal(t, gDto.Eq(model.RoomTableName, model.FieldNeedsRestock, true), filter.Filters[1])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.RoomProduct{{RoomID: 7, ProductID: 9, Quantity: 0, NeedsRestock: true, ProductName: "Sparkling water"}}, nil)

	res, err := f.svc.GetAll(as("erin", permissions.RoleEmployee), 7, params, &restock)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.True(t, res.Products[0].NeedsRestock)
}

func TestRoomStock_Update(t *testing.T) {
	quantity := 0
	restock := true
	req := dto.UpdateStockRequest{Quantity: &quantity, NeedsRestock: &restock}

	t.Run("not stocked", func(t *testing.T) {
		f := newStockFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(as("root", permissions.RoleAdmin), req, 7, 9)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("emptied and flagged", func(t *testing.T) {
		f := newStockFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &quantity, fields["quantity"])
				assert.Equal(t, &restock, fields["needs_restock"])

				return nil
			})

		require.NoError(t, f.svc.Update(as("root", permissions.RoleAdmin), req, 7, 9))
	})
}

func TestRoomStock_Remove(t *testing.T) {
	t.Run("employee of another accommodation", func(t *testing.T) {
		f := newStockFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(2), "erin").Return(false, nil)

		err := f.svc.Remove(as("erin", permissions.RoleEmployee), 7, 9)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("removed", func(t *testing.T) {
		f := newStockFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Remove(as("root", permissions.RoleAdmin), 7, 9))
	})
}
