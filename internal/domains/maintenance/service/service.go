package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	accommodationModel "hostmaster/internal/domains/accommodation/model"
	"hostmaster/internal/domains/maintenance/model"
	"hostmaster/internal/domains/maintenance/model/dto"
	"hostmaster/internal/domains/maintenance/repository"
	reservationModel "hostmaster/internal/domains/reservation/model"
	reservationRepo "hostmaster/internal/domains/reservation/repository"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	userModel "hostmaster/internal/domains/user/model"
	userRepo "hostmaster/internal/domains/user/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"
	"hostmaster/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Maintenance interface {
	Create(ctx context.Context, req dto.CreateMaintenanceRequest) (dto.MaintenanceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMaintenanceResponse, error)
	Get(ctx context.Context, id int64) (dto.MaintenanceResponse, error)
	Update(ctx context.Context, req dto.UpdateMaintenanceRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo            repository.MaintenanceRequest
	roomRepo        roomRepo.Room
	reservationRepo reservationRepo.Reservation
	userRepo        userRepo.User
	policy          permissions.Policy
	otel            otel.Otel
}

func New(repo repository.MaintenanceRequest, roomRepo roomRepo.Room, reservationRepo reservationRepo.Reservation,
	userRepo userRepo.User, policy permissions.Policy, otel otel.Otel,
) Maintenance {
	return &serviceImpl{
		repo:            repo,
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		policy:          policy,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMaintenanceRequest) (res dto.MaintenanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 || room.AccommodationID != req.AccommodationID {
		return res, failure.NotFound("room not found in accommodation") // nolint:wrapcheck
	}

	staying := false
	if actor.IsClient() {
		if staying, err = s.isStaying(ctx, actor.Username, room.ID); err != nil {
			return res, err
		}
	}

	if err = s.policy.ReportMaintenance(ctx, actor, room.AccommodationID, staying); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.AssignedTo != nil {
		if err = s.policy.TriageMaintenance(actor); err != nil {
			return res, err //nolint:wrapcheck
		}

		if err = s.requireStaff(ctx, *req.AssignedTo); err != nil {
			return res, err
		}
	}

	request := req.ToModel(actor.Username)

	request.ID, err = s.repo.InsertReturningID(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("failed to create maintenance request")

		return res, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMaintenanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	visible, err := s.policy.ListMaintenance(actor)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	switch visible {
	case permissions.ScopeMember:
		filter.Filters = append(filter.Filters, accommodationModel.MemberOf(model.TableName, model.FieldAccommodationID, actor.Username))
	case permissions.ScopeOwn:
		filter.Filters = append(filter.Filters, gDto.Eq(model.TableName, model.FieldCreatedBy, actor.Username))
	case permissions.ScopeAll:
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count maintenance requests")

		return res, fmt.Errorf("failed to count maintenance requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance requests")

		return res, fmt.Errorf("failed to get maintenance requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.MaintenanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, request, err := s.authorize(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMaintenanceRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if req.Triages() {
		if err = s.policy.TriageMaintenance(actor); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if req.AssignedTo != nil {
		if err = s.requireStaff(ctx, *req.AssignedTo); err != nil {
			return err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update maintenance request")

		return fmt.Errorf("failed to update maintenance request: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return err
	}

	if err = s.policy.DeleteMaintenance(ctx, actor, request.AccommodationID); err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete maintenance request")

		return fmt.Errorf("failed to delete maintenance request: %w", err)
	}

	return nil
}

func (s *serviceImpl) getRequest(ctx context.Context, id int64) (model.MaintenanceRequest, error) {
	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance request")

		return request, fmt.Errorf("failed to get maintenance request: %w", err)
	}

	if request.ID == 0 {
		return request, failure.NotFound("maintenance request not found") // nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) authorize(ctx context.Context, id int64) (permissions.Actor, model.MaintenanceRequest, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, model.MaintenanceRequest{}, err //nolint:wrapcheck
	}

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return actor, request, err
	}

	if err := s.policy.ManageMaintenance(ctx, actor, request.AccommodationID, request.CreatedBy); err != nil {
		return actor, request, err //nolint:wrapcheck
	}

	return actor, request, nil
}

// isStaying reports whether the user holds a confirmed reservation on the room covering today.
func (s *serviceImpl) isStaying(ctx context.Context, username string, roomID int64) (bool, error) {
	today := timezone.Today()

	total, err := s.reservationRepo.Count(ctx, gDto.And(
		gDto.Eq(reservationModel.TableName, reservationModel.FieldUserUsername, username),
		gDto.Eq(reservationModel.TableName, reservationModel.FieldRoomID, roomID),
		gDto.Eq(reservationModel.TableName, reservationModel.FieldStatus, reservationModel.StatusConfirmed.String()),
		gDto.Filter{
			Table: reservationModel.TableName, Field: reservationModel.FieldStartDate,
			Operator: gDto.FilterOperatorLessEq, Value: today,
		},
		gDto.Filter{
			Table: reservationModel.TableName, Field: reservationModel.FieldEndDate,
			Operator: gDto.FilterOperatorGreaterEq, Value: today,
		},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to check current stay")

		return false, fmt.Errorf("failed to check current stay: %w", err)
	}

	return total > 0, nil
}

// requireStaff resolves an assignee, who must be an admin or an employee.
func (s *serviceImpl) requireStaff(ctx context.Context, username string) error {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get assignee")

		return fmt.Errorf("failed to get assignee: %w", err)
	}

	if user.Username == "" || !user.Role.IsStaff() {
		return failure.NotFound("assignee not found among staff") // nolint:wrapcheck
	}

	return nil
}
