package ports

import (
	"context"
	"time"

	"github.com/travelink/booking-api/internal/core/domain"
)

// CreateReservationInput carries all data needed to record a booking.
type CreateReservationInput struct {
	UserID   string
	HotelID  string
	RoomType string
	CheckIn  time.Time
	CheckOut time.Time
}

// PartnerReservationInput is relayed to the external reservation service.
type PartnerReservationInput struct {
	HotelID int
	RoomIDs []int
	Start   time.Time
	End     time.Time
	// Client identity attached from the authenticated subject.
	UserID    string
	UserName  string
	UserEmail string
}

// PartnerResult carries the partner service's verbatim response.
type PartnerResult struct {
	StatusCode int
	Body       map[string]any
}

// ReservationService defines use-case operations for bookings.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id, userID string) (*domain.Reservation, error)
	// RelayToPartner forwards the reservation to the external service and
	// returns its response for the handler to propagate.
	RelayToPartner(ctx context.Context, input PartnerReservationInput) (*PartnerResult, error)
}
