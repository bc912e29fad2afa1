package model

import "hostmaster/shared/model"

const (
	TableName  = "inventory_items"
	EntityName = "inventory item"

	FieldID       = "id"
	FieldRoomID   = "room_id"
	FieldName     = "name"
	FieldQuantity = "quantity"
)

type InventoryItem struct {
	ID       int64  `db:"id"`
	RoomID   int64  `db:"room_id"`
	Name     string `db:"name"`
	Quantity int    `db:"quantity"`
	model.Metadata
}
