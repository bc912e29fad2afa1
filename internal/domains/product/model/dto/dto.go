package dto

import (
	"hostmaster/internal/domains/product/model"
	"hostmaster/shared"
	gDto "hostmaster/shared/dto"
	gModel "hostmaster/shared/model"
)

type CreateProductRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64 `json:"price"                 validate:"gte=0"`
}

func (r *CreateProductRequest) ToModel(user string) model.Product {
	return model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Metadata:    gModel.NewMetadata(user),
	}
}

type UpdateProductRequest struct {
	Name        *string  `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Description *string  `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64 `db:"price"       json:"price,omitempty"       validate:"omitempty,gte=0"`
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	gDto.Metadata
}

func (r *ProductResponse) FromModel(model model.Product) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}

type StockProductRequest struct {
	ProductID    int64 `json:"product_id"    validate:"required,gt=0"`
	Quantity     int   `json:"quantity"      validate:"gte=0"`
	NeedsRestock bool  `json:"needs_restock"`
}

func (r *StockProductRequest) ToModel(roomID int64, user string) model.RoomProduct {
	return model.RoomProduct{
		RoomID:       roomID,
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		NeedsRestock: r.NeedsRestock,
		Metadata:     gModel.NewMetadata(user),
	}
}

// UpdateStockRequest uses pointers so that a zero quantity or a cleared restock flag can be set.
type UpdateStockRequest struct {
	Quantity     *int  `db:"quantity"      json:"quantity,omitempty"      validate:"omitempty,gte=0"`
	NeedsRestock *bool `db:"needs_restock" json:"needs_restock,omitempty"`
}

type RoomProductResponse struct {
	RoomID       int64   `json:"room_id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	ProductPrice float64 `json:"product_price,omitempty"`
	Quantity     int     `json:"quantity"`
	NeedsRestock bool    `json:"needs_restock"`
	gDto.Metadata
}

func (r *RoomProductResponse) FromModel(model model.RoomProduct) {
	r.RoomID = model.RoomID
	r.ProductID = model.ProductID
	r.ProductName = model.ProductName
	r.ProductPrice = model.ProductPrice
	r.Quantity = model.Quantity
	r.NeedsRestock = model.NeedsRestock
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetRoomProductsResponse struct {
	Products  []RoomProductResponse `json:"products"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetRoomProductsResponse) FromModels(models []model.RoomProduct, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]RoomProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}
