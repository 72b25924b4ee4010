package ports

import (
	"context"

	"github.com/travelink/booking-api/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	// FindByID retrieves a reservation. When userID is non-empty the lookup is
	// additionally scoped to that owner.
	FindByID(ctx context.Context, id, userID string) (*domain.Reservation, error)
	// ListByUser returns all reservations for a user, newest first. An empty
	// userID returns every reservation (admin listing).
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}
