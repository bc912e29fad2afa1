package dto

import (
	"hostmaster/internal/domains/roomtype/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateRoomTypeRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	MaxGuests int    `json:"max_guests" validate:"required,gt=0"`
}

func (r *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	return model.RoomType{
		Name:      r.Name,
		MaxGuests: r.MaxGuests,
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpdateRoomTypeRequest struct {
	Name      *string `db:"name"       json:"name,omitempty"       validate:"omitempty,max=100"`
	MaxGuests *int    `db:"max_guests" json:"max_guests,omitempty" validate:"omitempty,gt=0"`
}

type RoomTypeResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	MaxGuests int    `json:"max_guests"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.MaxGuests = model.MaxGuests
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
