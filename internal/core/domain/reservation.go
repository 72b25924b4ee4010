package domain

import (
	"errors"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

var ErrReservationNotFound = errors.New("reservation not found")

// Reservation is a hotel room booking made by a user.
type Reservation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	HotelID   string            `json:"hotel_id"`
	RoomType  string            `json:"room_type"`
	CheckIn   time.Time         `json:"check_in"`
	CheckOut  time.Time         `json:"check_out"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
