package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hostmaster/infras/otel/mocks"
	"hostmaster/internal/domains/product/mocks"
	"hostmaster/internal/domains/product/model"
	"hostmaster/internal/domains/product/model/dto"
	"hostmaster/internal/domains/product/service"
	"hostmaster/permissions"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

func as(username string, role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: username, Role: role})
}

func newProductService(t *testing.T) (service.Product, *mocks.MockProduct) {
	t.Helper()

	repo := mocks.NewMockProduct(gomock.NewController(t))

	return service.New(repo, permissions.NewPolicy(nil), otelMocks.NewOtel()), repo
}

func TestProduct_Create(t *testing.T) {
	req := dto.CreateProductRequest{Name: "Sparkling water", Price: 2.5}

	t.Run("employees cannot", func(t *testing.T) {
		svc, _ := newProductService(t)

		_, err := svc.Create(as("erin", permissions.RoleEmployee), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("created", func(t *testing.T) {
		svc, repo := newProductService(t)
		repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, product model.Product) (int64, error) {
				assert.Equal(t, "root", product.CreatedBy)

				return 9, nil
			})

		res, err := svc.Create(as("root", permissions.RoleAdmin), req)
		require.NoError(t, err)
		assert.Equal(t, int64(9), res.ID)
		assert.InDelta(t, 2.5, res.Price, 0.001)
	})
}

func TestProduct_Get(t *testing.T) {
	svc, repo := newProductService(t)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)

	_, err := svc.Get(as("carl", permissions.RoleClient), 9)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestProduct_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 1}

	svc, repo := newProductService(t)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Product{{ID: 9, Name: "Sparkling water"}}, nil)

	res, err := svc.GetAll(as("carl", permissions.RoleClient), params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Products, 1)
}

func TestProduct_Delete(t *testing.T) {
	tests := []struct {
		name      string
		role      permissions.Role
		setupMock func(repo *mocks.MockProduct)
		wantCode  int
	}{
		{
			name: "missing",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockProduct) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "employees cannot",
			role: permissions.RoleEmployee,
			setupMock: func(repo *mocks.MockProduct) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "still stocked in a room",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockProduct) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString("referenced record does not exist or is still in use"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "deleted",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockProduct) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newProductService(t)
			tt.setupMock(repo)

			err := svc.Delete(as("root", tt.role), 9)
			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
