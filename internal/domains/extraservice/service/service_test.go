package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostmaster/config"
	otelMocks "hostmaster/infras/otel/mocks"
	"hostmaster/internal/domains/extraservice/mocks"
	"hostmaster/internal/domains/extraservice/model/dto"
	"hostmaster/internal/domains/extraservice/service"
	"hostmaster/permissions"
	cacheMocks "hostmaster/shared/cache/mocks"
	"hostmaster/shared/failure"
)

func newService(t *testing.T) (service.ExtraService, *mocks.MockExtraService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExtraService(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, permissions.NewPolicy(nil), &config.Config{}, cache, otelMocks.NewOtel()), repo
}

func as(role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: "theo", Role: role})
}

func TestCreate(t *testing.T) {
	req := dto.CreateExtraServiceRequest{Name: "Breakfast", Price: 12.5}

	tests := []struct {
		name      string
		role      permissions.Role
		setupMock func(repo *mocks.MockExtraService)
		wantCode  int
	}{
		{
			name:      "clients cannot",
			role:      permissions.RoleClient,
			setupMock: func(_ *mocks.MockExtraService) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "employees can",
			role: permissions.RoleEmployee,
			setupMock: func(repo *mocks.MockExtraService) {
				repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(3), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(as(tt.role), req)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, int64(3), res.ID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		role      permissions.Role
		setupMock func(repo *mocks.MockExtraService)
		wantCode  int
	}{
		{
			name: "missing",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockExtraService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "employees cannot modify",
			role: permissions.RoleEmployee,
			setupMock: func(repo *mocks.MockExtraService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "still linked to reservations",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockExtraService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString("referenced record does not exist or is still in use"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "deleted",
			role: permissions.RoleAdmin,
			setupMock: func(repo *mocks.MockExtraService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			err := svc.Delete(as(tt.role), 3)
			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
