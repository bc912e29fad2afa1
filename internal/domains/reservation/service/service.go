package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	extraServiceModel "hostmaster/internal/domains/extraservice/model"
	extraServiceRepo "hostmaster/internal/domains/extraservice/repository"
	notificationDto "hostmaster/internal/domains/notification/model/dto"
	notification "hostmaster/internal/domains/notification/service"
	"hostmaster/internal/domains/reservation/model"
	"hostmaster/internal/domains/reservation/model/dto"
	"hostmaster/internal/domains/reservation/repository"
	roomModel "hostmaster/internal/domains/room/model"
	roomRepo "hostmaster/internal/domains/room/repository"
	userModel "hostmaster/internal/domains/user/model"
	userRepo "hostmaster/internal/domains/user/repository"
	"hostmaster/permissions"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id int64) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id int64) error

	AddExtraService(ctx context.Context, id int64, req dto.AddExtraServiceRequest) error
	RemoveExtraService(ctx context.Context, id, extraServiceID int64) error
	ListExtraServices(ctx context.Context, id int64) ([]dto.ExtraServiceResponse, error)
}

type serviceImpl struct {
	repo             repository.Reservation
	extraRepo        repository.ExtraService
	userRepo         userRepo.User
	roomRepo         roomRepo.Room
	extraServiceRepo extraServiceRepo.ExtraService
	transactor       postgres.Transactor
	policy           permissions.Policy
	notifier         notification.Notification
	otel             otel.Otel
}

func New(
	repo repository.Reservation,
	extraRepo repository.ExtraService,
	userRepo userRepo.User,
	roomRepo roomRepo.Room,
	extraServiceRepo extraServiceRepo.ExtraService,
	transactor postgres.Transactor,
	policy permissions.Policy,
	notifier notification.Notification,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:             repo,
		extraRepo:        extraRepo,
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		extraServiceRepo: extraServiceRepo,
		transactor:       transactor,
		policy:           policy,
		notifier:         notifier,
		otel:             otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.policy.CreateReservationFor(actor, req.UserUsername); err != nil {
		return res, err //nolint:wrapcheck
	}

	username := req.UserUsername
	if username == "" {
		username = actor.Username
	}

	user, err := s.getUser(ctx, username)
	if err != nil {
		return res, err
	}

	stay, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !stay.Valid() {
		return res, failure.BadRequestFromString("start_date must be before end_date") // nolint:wrapcheck
	}

	reservation, err := req.ToModel(username, actor.Username, stay)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var room roomModel.Room

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err = s.checkRoom(ctx, tx, reservation)
		if err != nil {
			return err
		}

		if reservation.Status.Blocking() {
			if err := s.checkOverlap(ctx, tx, reservation); err != nil {
				return err
			}
		}

		id, err := s.repo.InsertReturningIDTx(ctx, tx, reservation)
		if err != nil {
			log.Error().Err(err).Msg("failed to create reservation")

			return fmt.Errorf("failed to create reservation: %w", err)
		}

		reservation.ID = id

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if user.HasEmail() {
		s.sendConfirmation(ctx, *user.Email, reservation, room)
	}

	res.FromModel(reservation, nil)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	ownOnly, err := s.policy.ListReservations(actor)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if ownOnly {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserUsername,
			Value:    actor.Username,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	extraServices, err := s.getExtraServices(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(models, extraServices, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.getAuthorized(ctx, id)
	if err != nil {
		return res, err
	}

	extraServices, err := s.getExtraServices(ctx, []model.Reservation{reservation})
	if err != nil {
		return res, err
	}

	res.FromModel(reservation, extraServices[reservation.ID])

	return res, nil
}

// Update validates the patch against the reservation as it stands under its row lock,
// so concurrent edits of the same reservation are applied one after the other.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.getAuthorized(ctx, id)
	if err != nil {
		return res, err
	}

	if req.IsEmpty() {
		return s.Get(ctx, id)
	}

	actor, _ := permissions.ActorFromContext(ctx)

	if req.UserUsername != nil && *req.UserUsername != current.UserUsername {
		if err = s.policy.CreateReservationFor(actor, *req.UserUsername); err != nil {
			return res, err //nolint:wrapcheck
		}

		if _, err = s.getUser(ctx, *req.UserUsername); err != nil {
			return res, err
		}
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	updatedFields := shared.TransformFields(req, actor.Username)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.lockReservation(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		next, err := req.Apply(locked)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		if req.DatesChanged() && !next.Stay().Valid() {
			return failure.BadRequestFromString("start_date must be before end_date") // nolint:wrapcheck
		}

		roomChanged := next.RoomID != locked.RoomID
		reactivated := !locked.Status.Blocking() && next.Status.Blocking()
		claimsNights := next.Status.Blocking() && (roomChanged || req.DatesChanged() || reactivated)
		checkCapacity := req.GuestCount != nil || req.RoomID != nil

		room, err := s.lockRoom(ctx, tx, next)
		if err != nil {
			return err
		}

		if claimsNights && !room.IsAvailable {
			return failure.BadRequestFromString(fmt.Sprintf("room %d is not available", room.ID)) // nolint:wrapcheck
		}

		if checkCapacity && next.GuestCount > room.MaxGuests {
			return capacityError(next.GuestCount, room.MaxGuests)
		}

		if claimsNights {
			if err := s.checkOverlap(ctx, tx, next); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to update reservation")

			return fmt.Errorf("failed to update reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getAuthorized(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) AddExtraService(ctx context.Context, id int64, req dto.AddExtraServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddExtraService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.getAuthorized(ctx, id)
	if err != nil {
		return err
	}

	exist, err := s.extraServiceRepo.Exist(ctx, shared.FilterByID(req.ExtraServiceID, extraServiceModel.FieldID, extraServiceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check extra service existence")

		return fmt.Errorf("failed to check extra service existence: %w", err)
	}

	if !exist {
		return failure.NotFound("extra service not found") // nolint:wrapcheck
	}

	filter := extraServiceFilter(id, req.ExtraServiceID)

	exist, err = s.extraRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation extra service existence")

		return fmt.Errorf("failed to check reservation extra service existence: %w", err)
	}

	if exist {
		return failure.BadRequestFromString("this extra service is already associated with the reservation") // nolint:wrapcheck
	}

	link := model.ExtraService{
		ReservationID:  reservation.ID,
		ExtraServiceID: req.ExtraServiceID,
	}

	if err = s.extraRepo.Insert(ctx, link); err != nil {
		log.Error().Err(err).Msg("failed to add extra service to reservation")

		return fmt.Errorf("failed to add extra service to reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) RemoveExtraService(ctx context.Context, id, extraServiceID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveExtraService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getAuthorized(ctx, id); err != nil {
		return err
	}

	filter := extraServiceFilter(id, extraServiceID)

	exist, err := s.extraRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation extra service existence")

		return fmt.Errorf("failed to check reservation extra service existence: %w", err)
	}

	if !exist {
		return failure.NotFound("extra service is not associated with the reservation") // nolint:wrapcheck
	}

	if err = s.extraRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove extra service from reservation")

		return fmt.Errorf("failed to remove extra service from reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) ListExtraServices(ctx context.Context, id int64) (res []dto.ExtraServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListExtraServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.getAuthorized(ctx, id)
	if err != nil {
		return res, err
	}

	extraServices, err := s.getExtraServices(ctx, []model.Reservation{reservation})
	if err != nil {
		return res, err
	}

	return dto.ExtraServicesFromModels(extraServices[reservation.ID]), nil
}

// getAuthorized loads the reservation and checks the caller may act on it.
func (s *serviceImpl) getAuthorized(ctx context.Context, id int64) (model.Reservation, error) {
	actor, err := permissions.ActorFromContext(ctx)
	if err != nil {
		return model.Reservation{}, err //nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageReservation(actor, reservation.UserUsername); err != nil {
		return reservation, err //nolint:wrapcheck
	}

	return reservation, nil
}

// lockReservation re-reads the reservation under its row lock. Another writer may
// have moved or reassigned it since the caller was authorized.
func (s *serviceImpl) lockReservation(ctx context.Context, tx *sqlx.Tx, actor permissions.Actor, id int64) (model.Reservation, error) {
	reservation, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to lock reservation")

		return reservation, fmt.Errorf("failed to lock reservation: %w", err)
	}

	if reservation.ID == 0 {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err := s.policy.ManageReservation(actor, reservation.UserUsername); err != nil {
		return reservation, err //nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) getUser(ctx context.Context, username string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Username == "" {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

// lockRoom takes the row lock that serialises reservation writes for a room
// and checks the room belongs to the reservation's accommodation.
func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(reservation.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", reservation.RoomID).Msg("failed to lock room")

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.AccommodationID != reservation.AccommodationID {
		return room, failure.BadRequestFromString(fmt.Sprintf("room %d does not belong to accommodation %d", room.ID, reservation.AccommodationID)) // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) checkRoom(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) (roomModel.Room, error) {
	room, err := s.lockRoom(ctx, tx, reservation)
	if err != nil {
		return room, err
	}

	if !room.IsAvailable {
		return room, failure.BadRequestFromString(fmt.Sprintf("room %d is not available", room.ID)) // nolint:wrapcheck
	}

	if reservation.GuestCount > room.MaxGuests {
		return room, capacityError(reservation.GuestCount, room.MaxGuests)
	}

	return room, nil
}

// checkOverlap must run after lockRoom in the same transaction.
func (s *serviceImpl) checkOverlap(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    reservation.RoomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled.String(),
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	if reservation.ID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "self_id",
			Field:    model.FieldID,
			Value:    reservation.ID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	existing, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Int64("room_id", reservation.RoomID).Msg("failed to get room reservations")

		return fmt.Errorf("failed to get room reservations: %w", err)
	}

	stay := reservation.Stay()

	for _, other := range existing {
		if other.ID == reservation.ID || !other.Status.Blocking() {
			continue
		}

		if stay.Overlaps(other.Stay()) {
			return failure.Conflict(fmt.Sprintf("room %d is already booked from %s to %s", // nolint:wrapcheck
				reservation.RoomID,
				other.StartDate.Format(constant.DateOnlyFormat),
				other.EndDate.Format(constant.DateOnlyFormat)))
		}
	}

	return nil
}

func (s *serviceImpl) getExtraServices(ctx context.Context, reservations []model.Reservation) (map[int64][]model.ExtraService, error) {
	res := make(map[int64][]model.ExtraService, len(reservations))
	if len(reservations) == 0 {
		return res, nil
	}

	ids := make([]int64, len(reservations))
	for i, reservation := range reservations {
		ids[i] = reservation.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.ExtraServiceTableName,
			},
		},
	}

	links, err := s.extraRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation extra services")

		return res, fmt.Errorf("failed to get reservation extra services: %w", err)
	}

	for _, link := range links {
		res[link.ReservationID] = append(res[link.ReservationID], link)
	}

	return res, nil
}

func (s *serviceImpl) sendConfirmation(ctx context.Context, recipient string, reservation model.Reservation, room roomModel.Room) {
	details := notificationDto.ReservationDetails{
		Title:             "Reservation Confirmation",
		Message:           fmt.Sprintf("Your reservation at %s has been received.", room.AccommodationName),
		ReservationID:     reservation.ID,
		AccommodationName: room.AccommodationName,
		RoomNumber:        room.Number,
		StartDate:         reservation.StartDate.Format(constant.DateOnlyFormat),
		EndDate:           reservation.EndDate.Format(constant.DateOnlyFormat),
		GuestCount:        reservation.GuestCount,
		Status:            reservation.Status.String(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.SendReservationConfirmation(c, recipient, details); err != nil {
			log.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("failed to send reservation confirmation")
		}
	}()
}

func capacityError(guests, maxGuests int) error {
	return failure.BadRequestFromString(fmt.Sprintf("guest count %d exceeds the room capacity of %d", guests, maxGuests)) // nolint:wrapcheck
}

func extraServiceFilter(reservationID, extraServiceID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Value:    reservationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.ExtraServiceTableName,
			},
			gDto.Filter{
				Field:    model.FieldExtraServiceID,
				Value:    extraServiceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.ExtraServiceTableName,
			},
		},
	}
}
