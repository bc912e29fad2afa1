package service

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	accommodationModel "hostmaster/internal/domains/accommodation/model"
	accommodationRepo "hostmaster/internal/domains/accommodation/repository"
	reservationModel "hostmaster/internal/domains/reservation/model"
	"hostmaster/internal/domains/room/model"
	"hostmaster/internal/domains/room/model/dto"
	"hostmaster/internal/domains/room/repository"
	roomTypeModel "hostmaster/internal/domains/roomtype/model"
	roomTypeRepo "hostmaster/internal/domains/roomtype/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	GetAvailable(ctx context.Context, params gDto.QueryParams, req dto.AvailabilityRequest) (dto.GetRoomsResponse, error)
	GetBooked(ctx context.Context, params gDto.QueryParams, req dto.AvailabilityRequest) (dto.GetRoomsResponse, error)
}

type serviceImpl struct {
	repo              repository.Room
	accommodationRepo accommodationRepo.Accommodation
	roomTypeRepo      roomTypeRepo.RoomType
	policy            permissions.Policy
	otel              otel.Otel
}

func New(
	repo repository.Room,
	accommodationRepo accommodationRepo.Accommodation,
	roomTypeRepo roomTypeRepo.RoomType,
	policy permissions.Policy,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:              repo,
		accommodationRepo: accommodationRepo,
		roomTypeRepo:      roomTypeRepo,
		policy:            policy,
		otel:              otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	exists, err := s.accommodationRepo.Exist(ctx, shared.FilterByID(req.AccommodationID, accommodationModel.FieldID, accommodationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check accommodation existence")

		return res, fmt.Errorf("failed to check accommodation existence: %w", err)
	}

	if !exists {
		return res, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	if err = s.policy.ManageAccommodation(ctx, actor, req.AccommodationID); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.checkRoomType(ctx, req.TypeID); err != nil {
		return res, err
	}

	if err = s.checkNumber(ctx, req.AccommodationID, req.Number, 0); err != nil {
		return res, err
	}

	id, err := s.repo.InsertReturningID(ctx, req.ToModel(actor.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get created room")

		return res, fmt.Errorf("failed to get created room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err = s.restrict(ctx, filter)
	if err != nil {
		return res, err
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.policy.ViewAccommodation(ctx, actor, room.AccommodationID); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, room, err := s.authorizeManage(ctx, id)
	if err != nil {
		return err
	}

	if req.TypeID != nil {
		if err = s.checkRoomType(ctx, *req.TypeID); err != nil {
			return err
		}
	}

	if req.Number != nil && *req.Number != room.Number {
		if err = s.checkNumber(ctx, room.AccommodationID, *req.Number, id); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Username), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

// Delete relies on the reservations foreign key to refuse rooms that were booked.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, _, err = s.authorizeManage(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// GetAvailable lists rooms open for booking with no blocking reservation overlapping the range.
func (s *serviceImpl) GetAvailable(ctx context.Context, params gDto.QueryParams, req dto.AvailabilityRequest) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := s.occupancy(ctx, req, false)
	if err != nil {
		return res, err
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldIsAvailable,
		Value:    true,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return s.list(ctx, params, filter)
}

// GetBooked lists rooms with at least one blocking reservation overlapping the range.
func (s *serviceImpl) GetBooked(ctx context.Context, params gDto.QueryParams, req dto.AvailabilityRequest) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooked")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := s.occupancy(ctx, req, true)
	if err != nil {
		return res, err
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) occupancy(ctx context.Context, req dto.AvailabilityRequest, booked bool) (gDto.FilterGroup, error) {
	stay, err := req.Stay()
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !stay.Valid() {
		return gDto.FilterGroup{}, failure.BadRequestFromString("start_date must be before end_date") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{Filters: []any{overlapping(stay, booked)}}

	if req.AccommodationID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldAccommodationID,
			Value:    *req.AccommodationID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return s.restrict(ctx, filter)
}

// overlapping applies the reservation overlap predicate, start < other.end
// and end > other.start, to the non-cancelled reservations of each room.
func overlapping(stay reservationModel.Stay, booked bool) gDto.Filter {
	query := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.%[2]s = %[3]s.%[4]s AND %[1]s.%[5]s != :occupancy_cancelled "+
			"AND %[1]s.%[6]s < :occupancy_end_date AND %[1]s.%[7]s > :occupancy_start_date)",
		reservationModel.TableName, reservationModel.FieldRoomID, model.TableName, model.FieldID,
		reservationModel.FieldStatus, reservationModel.FieldStartDate, reservationModel.FieldEndDate,
	)

	if !booked {
		query = "NOT " + query
	}

	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    query,
		Args: map[string]any{
			"occupancy_cancelled":  reservationModel.StatusCancelled.String(),
			"occupancy_start_date": stay.Start,
			"occupancy_end_date":   stay.End,
		},
	}
}

// restrict limits employees to the rooms of their accommodations.
func (s *serviceImpl) restrict(ctx context.Context, filter gDto.FilterGroup) (gDto.FilterGroup, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return filter, err //nolint:wrapcheck
	}

	memberOnly, err := s.policy.ListAccommodations(actor)
	if err != nil {
		return filter, err //nolint:wrapcheck
	}

	if memberOnly {
		filter.Filters = append(filter.Filters, accommodationModel.MemberOf(model.TableName, model.FieldAccommodationID, actor.Username))
	}

	return filter, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) authorizeManage(ctx context.Context, id int64) (permissions.Actor, model.Room, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return actor, model.Room{}, err //nolint:wrapcheck
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return actor, room, err
	}

	if err := s.policy.ManageAccommodation(ctx, actor, room.AccommodationID); err != nil {
		return actor, room, err //nolint:wrapcheck
	}

	return actor, room, nil
}

func (s *serviceImpl) checkRoomType(ctx context.Context, typeID int64) error {
	exists, err := s.roomTypeRepo.Exist(ctx, shared.FilterByID(typeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room type existence")

		return fmt.Errorf("failed to check room type existence: %w", err)
	}

	if !exists {
		return failure.BadRequestFromString("room type not found") // nolint:wrapcheck
	}

	return nil
}

// checkNumber rejects a number already used in the accommodation by a room other than selfID.
func (s *serviceImpl) checkNumber(ctx context.Context, accommodationID int64, number string, selfID int64) error {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAccommodationID, Value: accommodationID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldNumber, Value: number, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if selfID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "self_id",
			Field:    model.FieldID,
			Value:    selfID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	taken, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("room number %s already exists in this accommodation", number)) // nolint:wrapcheck
	}

	return nil
}
