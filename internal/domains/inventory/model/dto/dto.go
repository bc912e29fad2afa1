package dto

import (
	"hostmaster/internal/domains/inventory/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateInventoryItemRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func (r *CreateInventoryItemRequest) ToModel(roomID int64, user string) model.InventoryItem {
	return model.InventoryItem{
		RoomID:   roomID,
		Name:     r.Name,
		Quantity: r.Quantity,
		Metadata: gModel.NewMetadata(user),
	}
}

// UpdateInventoryItemRequest uses a pointer quantity so that zero can be set explicitly.
type UpdateInventoryItemRequest struct {
	Name     *string `db:"name"     json:"name,omitempty"     validate:"omitempty,max=100"`
	Quantity *int    `db:"quantity" json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type InventoryItemResponse struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"room_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	gDto.Metadata
}

func (r *InventoryItemResponse) FromModel(model model.InventoryItem) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Name = model.Name
	r.Quantity = model.Quantity
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetInventoryResponse struct {
	Items     []InventoryItemResponse `json:"items"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetInventoryResponse) FromModels(models []model.InventoryItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]InventoryItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
