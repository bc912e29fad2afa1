package model

import (
	"fmt"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/model"
)

const (
	TableName  = "accommodations"
	EntityName = "accommodation"

	FieldID          = "id"
	FieldName        = "name"
	FieldCityID      = "city_id"
	FieldAddress     = "address"
	FieldInformation = "information"

	MemberTableName  = "accommodation_users"
	MemberEntityName = "accommodation member"

	FieldAccommodationID = "accommodation_id"
	FieldUsername        = "username"
)

type Accommodation struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	CityID      int64   `db:"city_id"`
	Address     *string `db:"address"`
	Information *string `db:"information"`
	CityName    string  `column:"name" db:"city_name" table:"cities"`
	model.Metadata
}

func (Accommodation) GetJoinQuery() string {
	return "JOIN cities ON cities.id = accommodations.city_id"
}

// Member associates a user, usually an employee, with an accommodation.
type Member struct {
	AccommodationID int64  `db:"accommodation_id"`
	Username        string `db:"username"`
}

// MemberOf matches rows whose accommodation column points at an accommodation
// the given user is associated with.
func MemberOf(table, column, username string) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value: fmt.Sprintf("%s.%s IN (SELECT %s FROM %s WHERE %s = :member_username)",
			table, column, FieldAccommodationID, MemberTableName, FieldUsername),
		Args: map[string]any{"member_username": username},
	}
}
