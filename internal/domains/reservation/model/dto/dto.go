package dto

import (
	"fmt"
	"hostmaster/internal/domains/reservation/model"
	"hostmaster/shared"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
	"hostmaster/shared/timezone"
)

type CreateReservationRequest struct {
	UserUsername    string  `json:"user_username"    validate:"omitempty,max=50"`
	RoomID          int64   `json:"room_id"          validate:"required,gt=0"`
	AccommodationID int64   `json:"accommodation_id" validate:"required,gt=0"`
	StartDate       string  `json:"start_date"       validate:"required,date"`
	EndDate         string  `json:"end_date"         validate:"required,date"`
	GuestCount      int     `json:"guest_count"      validate:"required,gt=0"`
	Status          string  `json:"status"           validate:"omitempty,oneof=pending confirmed cancelled"`
	Observations    *string `json:"observations"     validate:"omitempty,max=500"`
}

// Stay parses the requested dates. It does not check their order.
func (c *CreateReservationRequest) Stay() (model.Stay, error) {
	return parseStay(c.StartDate, c.EndDate)
}

func (c *CreateReservationRequest) ToModel(username, createdBy string, stay model.Stay) (model.Reservation, error) {
	status := model.StatusPending

	if c.Status != "" {
		parsed, err := model.ParseStatus(c.Status)
		if err != nil {
			return model.Reservation{}, err
		}

		status = parsed
	}

	return model.Reservation{
		UserUsername:    username,
		RoomID:          c.RoomID,
		AccommodationID: c.AccommodationID,
		StartDate:       stay.Start,
		EndDate:         stay.End,
		GuestCount:      c.GuestCount,
		Status:          status,
		Observations:    c.Observations,
		Metadata:        gModel.NewMetadata(createdBy),
	}, nil
}

type UpdateReservationRequest struct {
	UserUsername    *string `db:"user_username"    json:"user_username"    validate:"omitempty,min=1,max=50"`
	RoomID          *int64  `db:"room_id"          json:"room_id"          validate:"omitempty,gt=0"`
	AccommodationID *int64  `db:"accommodation_id" json:"accommodation_id" validate:"omitempty,gt=0"`
	StartDate       *string `db:"start_date"       json:"start_date"       validate:"omitempty,date"`
	EndDate         *string `db:"end_date"         json:"end_date"         validate:"omitempty,date"`
	GuestCount      *int    `db:"guest_count"      json:"guest_count"      validate:"omitempty,gt=0"`
	Status          *string `db:"status"           json:"status"           validate:"omitempty,oneof=pending confirmed cancelled"`
	Observations    *string `db:"observations"     json:"observations"     validate:"omitempty,max=500"`
}

func (u *UpdateReservationRequest) IsEmpty() bool {
	return u.UserUsername == nil && u.RoomID == nil && u.AccommodationID == nil && u.StartDate == nil &&
		u.EndDate == nil && u.GuestCount == nil && u.Status == nil && u.Observations == nil
}

func (u *UpdateReservationRequest) DatesChanged() bool {
	return u.StartDate != nil || u.EndDate != nil
}

// Apply returns current with every provided field of the patch applied.
func (u *UpdateReservationRequest) Apply(current model.Reservation) (model.Reservation, error) {
	next := current

	if u.UserUsername != nil {
		next.UserUsername = *u.UserUsername
	}

	if u.RoomID != nil {
		next.RoomID = *u.RoomID
	}

	if u.AccommodationID != nil {
		next.AccommodationID = *u.AccommodationID
	}

	if u.GuestCount != nil {
		next.GuestCount = *u.GuestCount
	}

	if u.Observations != nil {
		next.Observations = u.Observations
	}

	if u.Status != nil {
		status, err := model.ParseStatus(*u.Status)
		if err != nil {
			return next, err
		}

		next.Status = status
	}

	start := current.StartDate.Format(constant.DateOnlyFormat)
	if u.StartDate != nil {
		start = *u.StartDate
	}

	end := current.EndDate.Format(constant.DateOnlyFormat)
	if u.EndDate != nil {
		end = *u.EndDate
	}

	stay, err := parseStay(start, end)
	if err != nil {
		return next, err
	}

	next.StartDate = stay.Start
	next.EndDate = stay.End

	return next, nil
}

type AddExtraServiceRequest struct {
	ExtraServiceID int64 `json:"extra_service_id" validate:"required,gt=0"`
}

type ExtraServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

func (e *ExtraServiceResponse) FromModel(model model.ExtraService) {
	e.ID = model.ExtraServiceID
	e.Name = model.Name
	e.Description = model.Description
	e.Price = model.Price
}

func ExtraServicesFromModels(models []model.ExtraService) []ExtraServiceResponse {
	res := make([]ExtraServiceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type ReservationResponse struct {
	ID              int64                  `json:"id"`
	UserUsername    string                 `json:"user_username"`
	RoomID          int64                  `json:"room_id"`
	AccommodationID int64                  `json:"accommodation_id"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	GuestCount      int                    `json:"guest_count"`
	Status          string                 `json:"status"`
	Observations    *string                `json:"observations"`
	ExtraServices   []ExtraServiceResponse `json:"extra_services"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation, extraServices []model.ExtraService) {
	r.ID = model.ID
	r.UserUsername = model.UserUsername
	r.RoomID = model.RoomID
	r.AccommodationID = model.AccommodationID
	r.StartDate = model.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = model.EndDate.Format(constant.DateOnlyFormat)
	r.GuestCount = model.GuestCount
	r.Status = model.Status.String()
	r.Observations = model.Observations
	r.ExtraServices = ExtraServicesFromModels(extraServices)
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, extraServices map[int64][]model.ExtraService, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod, extraServices[mod.ID])
	}
}

func parseStay(start, end string) (model.Stay, error) {
	startDate, err := timezone.ParseDate(start)
	if err != nil {
		return model.Stay{}, fmt.Errorf("invalid start_date %q", start)
	}

	endDate, err := timezone.ParseDate(end)
	if err != nil {
		return model.Stay{}, fmt.Errorf("invalid end_date %q", end)
	}

	return model.Stay{Start: startDate, End: endDate}, nil
}
