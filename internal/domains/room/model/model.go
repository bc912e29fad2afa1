package model

import "hostmaster/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID              = "id"
	FieldAccommodationID = "accommodation_id"
	FieldTypeID          = "type_id"
	FieldNumber          = "number"
	FieldPrice           = "price"
	FieldIsAvailable     = "is_available"
)

type Room struct {
	ID                int64   `db:"id"`
	AccommodationID   int64   `db:"accommodation_id"`
	TypeID            int64   `db:"type_id"`
	Number            string  `db:"number"`
	Price             float64 `db:"price"`
	IsAvailable       bool    `db:"is_available"`
	RoomTypeName      string  `column:"name" db:"room_type_name"     table:"room_types"`
	MaxGuests         int     `db:"max_guests" table:"room_types"`
	AccommodationName string  `column:"name" db:"accommodation_name" table:"accommodations"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN room_types ON room_types.id = rooms.type_id JOIN accommodations ON accommodations.id = rooms.accommodation_id"
}
