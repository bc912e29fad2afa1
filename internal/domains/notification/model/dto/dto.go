package dto

import (
	"hostmaster/internal/domains/reservation/model"
	"hostmaster/shared/constant"
)

// ReservationDetails is the data rendered into every reservation email.
type ReservationDetails struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	ReservationID     int64  `json:"reservation_id"`
	AccommodationName string `json:"accommodation_name"`
	RoomNumber        string `json:"room_number"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	GuestCount        int    `json:"guest_count"`
	Status            string `json:"status"`
}

func (r *ReservationDetails) FromDetail(detail model.Detail) {
	r.ReservationID = detail.ID
	r.AccommodationName = detail.AccommodationName
	r.RoomNumber = detail.RoomNumber
	r.StartDate = detail.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = detail.EndDate.Format(constant.DateOnlyFormat)
	r.GuestCount = detail.GuestCount
	r.Status = detail.Status.String()
}
