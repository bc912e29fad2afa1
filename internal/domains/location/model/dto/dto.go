package dto

import (
	"hostmaster/internal/domains/location/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateCityRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	State   string `json:"state"   validate:"required,max=100"`
	Country string `json:"country" validate:"required,max=100"`
}

func (c *CreateCityRequest) ToModel(user string) model.City {
	return model.City{
		Name:     c.Name,
		State:    c.State,
		Country:  c.Country,
		Metadata: gModel.NewMetadata(user),
	}
}

type CityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Country string `json:"country"`
	gDto.Metadata
}

func (r *CityResponse) FromModel(model model.City) {
	r.ID = model.ID
	r.Name = model.Name
	r.State = model.State
	r.Country = model.Country
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetCitiesResponse struct {
	Cities    []CityResponse `json:"cities"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetCitiesResponse) FromModels(models []model.City, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cities = make([]CityResponse, len(models))
	for i, mod := range models {
		r.Cities[i].FromModel(mod)
	}
}
