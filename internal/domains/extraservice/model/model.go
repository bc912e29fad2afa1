package model

import "hostmaster/shared/model"

const (
	TableName  = "extra_services"
	EntityName = "extra service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
)

type ExtraService struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       float64 `db:"price"`
	model.Metadata
}
