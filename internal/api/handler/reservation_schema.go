package handler

import (
	"time"

	"github.com/travelink/booking-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

type createReservationRequest struct {
	HotelID  string `json:"hotel_id" validate:"required"`
	RoomType string `json:"room_type" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

type partnerReservationRequest struct {
	HotelID   int    `json:"hotel_id" validate:"required"`
	RoomIDs   []int  `json:"room_ids" validate:"required,min=1"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type reservationResponse struct {
	Message     string              `json:"message"`
	Reservation *domain.Reservation `json:"reservation,omitempty"`
}

// parseDate parses a YYYY-MM-DD request field.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
