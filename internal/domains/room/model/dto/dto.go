package dto

import (
	"fmt"
	reservationModel "hostmaster/internal/domains/reservation/model"
	"hostmaster/internal/domains/room/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
	"hostmaster/shared/timezone"
	"net/http"
)

const (
	requestParamStartDate       = "start_date"
	requestParamEndDate         = "end_date"
	requestParamAccommodationID = "accommodation_id"
)

type CreateRoomRequest struct {
	AccommodationID int64   `json:"accommodation_id"       validate:"required,gt=0"`
	TypeID          int64   `json:"type_id"                validate:"required,gt=0"`
	Number          string  `json:"number"                 validate:"required,max=20"`
	Price           float64 `json:"price"                  validate:"gte=0"`
	IsAvailable     *bool   `json:"is_available,omitempty"`
}

func (r *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return model.Room{
		AccommodationID: r.AccommodationID,
		TypeID:          r.TypeID,
		Number:          r.Number,
		Price:           r.Price,
		IsAvailable:     available,
		Metadata:        gModel.NewMetadata(user),
	}
}

// UpdateRoomRequest cannot move a room to another accommodation.
type UpdateRoomRequest struct {
	TypeID      *int64   `db:"type_id"      json:"type_id,omitempty"      validate:"omitempty,gt=0"`
	Number      *string  `db:"number"       json:"number,omitempty"       validate:"omitempty,max=20"`
	Price       *float64 `db:"price"        json:"price,omitempty"        validate:"omitempty,gte=0"`
	IsAvailable *bool    `db:"is_available" json:"is_available,omitempty"`
}

// AvailabilityRequest selects rooms by their occupancy over [StartDate, EndDate).
type AvailabilityRequest struct {
	StartDate       string `validate:"required,date"`
	EndDate         string `validate:"required,date"`
	AccommodationID *int64 `validate:"omitempty,gt=0"`
}

func (r *AvailabilityRequest) FromRequest(req *http.Request) {
	query := req.URL.Query()

	r.StartDate = query.Get(requestParamStartDate)
	r.EndDate = query.Get(requestParamEndDate)
	r.AccommodationID = shared.ConvertStringToInt64(query.Get(requestParamAccommodationID))
}

func (r *AvailabilityRequest) Stay() (reservationModel.Stay, error) {
	start, err := timezone.ParseDate(r.StartDate)
	if err != nil {
		return reservationModel.Stay{}, fmt.Errorf("invalid start_date %q", r.StartDate)
	}

	end, err := timezone.ParseDate(r.EndDate)
	if err != nil {
		return reservationModel.Stay{}, fmt.Errorf("invalid end_date %q", r.EndDate)
	}

	return reservationModel.Stay{Start: start, End: end}, nil
}

type RoomResponse struct {
	ID                int64   `json:"id"`
	AccommodationID   int64   `json:"accommodation_id"`
	AccommodationName string  `json:"accommodation_name"`
	TypeID            int64   `json:"type_id"`
	TypeName          string  `json:"type_name"`
	MaxGuests         int     `json:"max_guests"`
	Number            string  `json:"number"`
	Price             float64 `json:"price"`
	IsAvailable       bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.AccommodationID = model.AccommodationID
	r.AccommodationName = model.AccommodationName
	r.TypeID = model.TypeID
	r.TypeName = model.RoomTypeName
	r.MaxGuests = model.MaxGuests
	r.Number = model.Number
	r.Price = model.Price
	r.IsAvailable = model.IsAvailable
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
