package dto

import (
	"hostmaster/internal/domains/accommodation/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateAccommodationRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	CityID      int64   `json:"city_id"               validate:"required,gt=0"`
	Address     *string `json:"address,omitempty"     validate:"omitempty,max=255"`
	Information *string `json:"information,omitempty"`
}

func (r *CreateAccommodationRequest) ToModel(user string) model.Accommodation {
	return model.Accommodation{
		Name:        r.Name,
		CityID:      r.CityID,
		Address:     r.Address,
		Information: r.Information,
		Metadata:    gModel.NewMetadata(user),
	}
}

type UpdateAccommodationRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	CityID      *int64  `db:"city_id"     json:"city_id,omitempty"     validate:"omitempty,gt=0"`
	Address     *string `db:"address"     json:"address,omitempty"     validate:"omitempty,max=255"`
	Information *string `db:"information" json:"information,omitempty"`
}

type AccommodationResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	CityID        int64    `json:"city_id"`
	CityName      string   `json:"city_name"`
	Address       *string  `json:"address,omitempty"`
	Information   *string  `json:"information,omitempty"`
	UserUsernames []string `json:"user_usernames,omitempty"`
	gDto.Metadata
}

func (r *AccommodationResponse) FromModel(model model.Accommodation) {
	r.ID = model.ID
	r.Name = model.Name
	r.CityID = model.CityID
	r.CityName = model.CityName
	r.Address = model.Address
	r.Information = model.Information
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetAccommodationsResponse struct {
	Accommodations []AccommodationResponse `json:"accommodations"`
	TotalPage      int                     `json:"total_page"`
	TotalData      int                     `json:"total_data"`
}

func (r *GetAccommodationsResponse) FromModels(models []model.Accommodation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accommodations = make([]AccommodationResponse, len(models))
	for i, mod := range models {
		r.Accommodations[i].FromModel(mod)
	}
}
