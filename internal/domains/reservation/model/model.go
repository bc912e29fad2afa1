package model

import (
	"fmt"
	"hostmaster/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldUserUsername    = "user_username"
	FieldRoomID          = "room_id"
	FieldAccommodationID = "accommodation_id"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldGuestCount      = "guest_count"
	FieldStatus          = "status"
	FieldObservations    = "observations"

	ExtraServiceTableName  = "reservation_extra_services"
	ExtraServiceEntityName = "reservation extra service"

	FieldReservationID  = "reservation_id"
	FieldExtraServiceID = "extra_service_id"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(value), nil
	}

	return "", fmt.Errorf("unknown reservation status %q", value)
}

func (s Status) String() string {
	return string(s)
}

// Blocking reports whether a reservation in this status occupies its room.
func (s Status) Blocking() bool {
	return s != StatusCancelled
}

type Reservation struct {
	ID              int64     `db:"id"`
	UserUsername    string    `db:"user_username"`
	RoomID          int64     `db:"room_id"`
	AccommodationID int64     `db:"accommodation_id"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	GuestCount      int       `db:"guest_count"`
	Status          Status    `db:"status"`
	Observations    *string   `db:"observations"`
	model.Metadata
}

func (r Reservation) Stay() Stay {
	return Stay{Start: r.StartDate, End: r.EndDate}
}

// Stay is the half-open night range [Start, End) a reservation occupies.
type Stay struct {
	Start time.Time
	End   time.Time
}

func (s Stay) Valid() bool {
	return s.Start.Before(s.End)
}

func (s Stay) Overlaps(other Stay) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// ExtraService links a reservation to a booked extra service. The name,
// description and price columns are read from extra_services.
type ExtraService struct {
	ReservationID  int64   `db:"reservation_id"`
	ExtraServiceID int64   `db:"extra_service_id"`
	Name           string  `db:"name"        table:"extra_services"`
	Description    *string `db:"description" table:"extra_services"`
	Price          float64 `db:"price"       table:"extra_services"`
}

func (ExtraService) GetJoinQuery() string {
	return "JOIN extra_services ON extra_services.id = reservation_extra_services.extra_service_id"
}

// Detail is a reservation joined with the guest, room and accommodation it
// refers to, as needed to address notifications.
type Detail struct {
	ID                int64     `db:"id"`
	UserUsername      string    `db:"user_username"`
	RoomID            int64     `db:"room_id"`
	StartDate         time.Time `db:"start_date"`
	EndDate           time.Time `db:"end_date"`
	GuestCount        int       `db:"guest_count"`
	Status            Status    `db:"status"`
	Email             *string   `db:"email"     table:"users"`
	FullName          *string   `db:"full_name" table:"users"`
	RoomNumber        string    `column:"number" db:"room_number"        table:"rooms"`
	AccommodationName string    `column:"name"   db:"accommodation_name" table:"accommodations"`
	Address           *string   `db:"address"   table:"accommodations"`
}

func (d Detail) HasEmail() bool {
	return d.Email != nil && *d.Email != ""
}

func (Detail) GetJoinQuery() string {
	return "JOIN users ON users.username = reservations.user_username " +
		"JOIN rooms ON rooms.id = reservations.room_id " +
		"JOIN accommodations ON accommodations.id = reservations.accommodation_id"
}
