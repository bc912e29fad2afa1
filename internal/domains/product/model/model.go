package model

import "hostmaster/shared/model"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"

	RoomTableName  = "room_products"
	RoomEntityName = "room product"

	FieldRoomID       = "room_id"
	FieldProductID    = "product_id"
	FieldQuantity     = "quantity"
	FieldNeedsRestock = "needs_restock"
)

type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       float64 `db:"price"`
	model.Metadata
}

// RoomProduct is the stock of a catalogue product kept in one room.
type RoomProduct struct {
	RoomID       int64   `db:"room_id"`
	ProductID    int64   `db:"product_id"`
	Quantity     int     `db:"quantity"`
	NeedsRestock bool    `db:"needs_restock"`
	ProductName  string  `column:"name"  db:"product_name"  table:"products"`
	ProductPrice float64 `column:"price" db:"product_price" table:"products"`
	model.Metadata
}

func (RoomProduct) GetJoinQuery() string {
	return "JOIN products ON products.id = room_products.product_id"
}
