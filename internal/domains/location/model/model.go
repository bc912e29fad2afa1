package model

import "hostmaster/shared/model"

const (
	TableName  = "cities"
	EntityName = "city"

	FieldID      = "id"
	FieldName    = "name"
	FieldState   = "state"
	FieldCountry = "country"
)

type City struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	State   string `db:"state"`
	Country string `db:"country"`
	model.Metadata
}
