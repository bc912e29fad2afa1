package dto

import (
	"hostmaster/internal/domains/extraservice/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateExtraServiceRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64 `json:"price"                 validate:"gte=0"`
}

func (r *CreateExtraServiceRequest) ToModel(user string) model.ExtraService {
	return model.ExtraService{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Metadata:    gModel.NewMetadata(user),
	}
}

type UpdateExtraServiceRequest struct {
	Name        *string  `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Description *string  `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64 `db:"price"       json:"price,omitempty"       validate:"omitempty,gte=0"`
}

type ExtraServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	gDto.Metadata
}

func (r *ExtraServiceResponse) FromModel(model model.ExtraService) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetExtraServicesResponse struct {
	ExtraServices []ExtraServiceResponse `json:"extra_services"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetExtraServicesResponse) FromModels(models []model.ExtraService, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ExtraServices = make([]ExtraServiceResponse, len(models))
	for i, mod := range models {
		r.ExtraServices[i].FromModel(mod)
	}
}
