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
	"hostmaster/internal/domains/room/mocks"
	"hostmaster/internal/domains/room/model"
	"hostmaster/internal/domains/room/model/dto"
	"hostmaster/internal/domains/room/service"
	roomTypeMocks "hostmaster/internal/domains/roomtype/mocks"
	"hostmaster/permissions"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
)

type fixture struct {
	repo              *mocks.MockRoom
	accommodationRepo *accommodationMocks.MockAccommodation
	roomTypeRepo      *roomTypeMocks.MockRoomType
	memberRepo        *accommodationMocks.MockMember
	svc               service.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:              mocks.NewMockRoom(ctrl),
		accommodationRepo: accommodationMocks.NewMockAccommodation(ctrl),
		roomTypeRepo:      roomTypeMocks.NewMockRoomType(ctrl),
		memberRepo:        accommodationMocks.NewMockMember(ctrl),
	}

	f.svc = service.New(f.repo, f.accommodationRepo, f.roomTypeRepo, permissions.NewPolicy(f.memberRepo), otelMocks.NewOtel())

	return f
}

func as(username string, role permissions.Role) context.Context {
	return permissions.WithActor(context.Background(), permissions.Actor{Username: username, Role: role})
}

func where(filter gDto.FilterGroup) (string, map[string]any) {
	return filter.GetWhereClause()
}

func TestRoom_Create(t *testing.T) {
	req := dto.CreateRoomRequest{AccommodationID: 1, TypeID: 2, Number: "101", Price: 80}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		code      int
	}{
		{
			name: "success",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(1), "erin").Return(true, nil)
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) (int64, error) {
						assert.True(t, room.IsAvailable)
						assert.Equal(t, "erin", room.CreatedBy)

						return 7, nil
					})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 7, AccommodationID: 1, Number: "101"}, nil)
			},
		},
		{
			name: "accommodation not found",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "employee of another accommodation",
			ctx:  as("erin", permissions.RoleEmployee),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(1), "erin").Return(false, nil)
			},
			code: http.StatusForbidden,
		},
		{
			name: "client",
			ctx:  as("carl", permissions.RoleClient),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			code: http.StatusForbidden,
		},
		{
			name: "unknown room type",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			code: http.StatusBadRequest,
		},
		{
			name: "duplicate number",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						clause, args := where(filter)
						assert.Contains(t, clause, "rooms.number = :number")
						assert.NotContains(t, clause, "self_id")
						assert.Equal(t, "101", args["number"])

						return true, nil
					})
			},
			code: http.StatusConflict,
		},
		{
			name: "insert failure",
			ctx:  as("root", permissions.RoleAdmin),
			setupMock: func(f *fixture) {
				f.accommodationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, req)

			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), res.ID)
		})
	}
}

func TestRoom_Update(t *testing.T) {
	stored := model.Room{ID: 7, AccommodationID: 1, Number: "101"}
	renamed := "102"
	same := "101"

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f *fixture)
		code      int
	}{
		{
			name: "number unchanged skips the duplicate check",
			req:  dto.UpdateRoomRequest{Number: &same},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "new number excludes the room itself",
			req:  dto.UpdateRoomRequest{Number: &renamed},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						clause, args := where(filter)
						assert.Contains(t, clause, "rooms.id != :self_id")
						assert.Equal(t, int64(7), args["self_id"])

						return false, nil
					})
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &renamed, fields[model.FieldNumber])

						return nil
					})
			},
		},
		{
			name: "new number taken",
			req:  dto.UpdateRoomRequest{Number: &renamed},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			code: http.StatusConflict,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Number: &renamed},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(as("root", permissions.RoleAdmin), tt.req, 7)

			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoom_GetAvailable(t *testing.T) {
	accommodationID := int64(3)

	t.Run("client sees rooms without overlapping reservations", func(t *testing.T) {
		f := newFixture(t)

		var captured gDto.FilterGroup

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				captured = filter

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{{ID: 1}}, nil)

		res, err := f.svc.GetAvailable(as("carl", permissions.RoleClient), gDto.QueryParams{Limit: 10}, dto.AvailabilityRequest{
			StartDate:       "2026-01-10",
			EndDate:         "2026-01-12",
			AccommodationID: &accommodationID,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)

		clause, args := where(captured)
		assert.Contains(t, clause, "NOT EXISTS (SELECT 1 FROM reservations")
		assert.Contains(t, clause, "reservations.start_date < :occupancy_end_date")
		assert.Contains(t, clause, "reservations.end_date > :occupancy_start_date")
		assert.Contains(t, clause, "rooms.is_available = :is_available")
		assert.Contains(t, clause, "rooms.accommodation_id = :accommodation_id")
		assert.NotContains(t, clause, "member_username")
		assert.Equal(t, "cancelled", args["occupancy_cancelled"])
	})

	t.Run("employee is restricted to associated accommodations", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				clause, args := where(filter)
				assert.Contains(t, clause, "accommodation_users")
				assert.Equal(t, "erin", args["member_username"])

				return 0, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.GetBooked(as("erin", permissions.RoleEmployee), gDto.QueryParams{Limit: 10}, dto.AvailabilityRequest{
			StartDate: "2026-01-10",
			EndDate:   "2026-01-12",
		})

		assert.NoError(t, err)
	})

	t.Run("reversed range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAvailable(as("carl", permissions.RoleClient), gDto.QueryParams{Limit: 10}, dto.AvailabilityRequest{
			StartDate: "2026-01-12",
			EndDate:   "2026-01-12",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoom_GetBookedUsesExists(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			clause, _ := where(filter)
			assert.Contains(t, clause, "(EXISTS (SELECT 1 FROM reservations")
			assert.NotContains(t, clause, "NOT EXISTS")
			assert.NotContains(t, clause, "is_available")

			return 0, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.GetBooked(as("root", permissions.RoleAdmin), gDto.QueryParams{Limit: 10}, dto.AvailabilityRequest{
		StartDate: "2026-01-10",
		EndDate:   "2026-01-11",
	})

	assert.NoError(t, err)
}

func TestRoom_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 7, AccommodationID: 1}, nil)
	f.memberRepo.EXPECT().IsMember(gomock.Any(), int64(1), "erin").Return(false, nil)

	err := f.svc.Delete(as("erin", permissions.RoleEmployee), 7)

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}
