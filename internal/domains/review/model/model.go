package model

import "hostmaster/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID              = "id"
	FieldAccommodationID = "accommodation_id"
	FieldUserUsername    = "user_username"
	FieldRating          = "rating"
	FieldComment         = "comment"
)

type Review struct {
	ID              int64   `db:"id"`
	AccommodationID int64   `db:"accommodation_id"`
	UserUsername    string  `db:"user_username"`
	Rating          int     `db:"rating"`
	Comment         *string `db:"comment"`
	model.Metadata
}
