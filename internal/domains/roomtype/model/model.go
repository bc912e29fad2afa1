package model

import "hostmaster/shared/model"

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID        = "id"
	FieldName      = "name"
	FieldMaxGuests = "max_guests"
)

type RoomType struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	MaxGuests int    `db:"max_guests"`
	model.Metadata
}
