package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
)

// ReservationService implements booking use cases and the partner relay.
type ReservationService struct {
	repo    ports.ReservationRepository
	partner ports.PartnerClient
	log     zerolog.Logger
}

func NewReservationService(repo ports.ReservationRepository, partner ports.PartnerClient, log zerolog.Logger) *ReservationService {
	return &ReservationService{repo: repo, partner: partner, log: log}
}

// Create records a new active reservation for the user.
func (s *ReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	if input.CheckOut.Before(input.CheckIn) {
		return nil, fmt.Errorf("create reservation: check_out before check_in")
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		UserID:    input.UserID,
		HotelID:   input.HotelID,
		RoomType:  input.RoomType,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Status:    domain.ReservationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info().Str("reservation_id", created.ID).Str("user_id", created.UserID).Str("hotel_id", created.HotelID).Msg("reservation created")
	return created, nil
}

// ListForUser returns the user's reservations, newest first.
func (s *ReservationService) ListForUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every reservation (admin only, enforced at the router).
func (s *ReservationService) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	return s.repo.ListByUser(ctx, "")
}

// Cancel marks the user's reservation cancelled. Lookups are scoped to the
// owner, so cancelling someone else's reservation reads as not found.
func (s *ReservationService) Cancel(ctx context.Context, id, userID string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != domain.ReservationCancelled {
		if err := s.repo.UpdateStatus(ctx, reservation.ID, domain.ReservationCancelled); err != nil {
			return nil, fmt.Errorf("cancel reservation: %w", err)
		}
		reservation.Status = domain.ReservationCancelled
		reservation.UpdatedAt = time.Now().UTC()
	}

	s.log.Info().Str("reservation_id", reservation.ID).Str("user_id", userID).Msg("reservation cancelled")
	return reservation, nil
}

// RelayToPartner forwards a multi-room reservation to the external service
// and hands back its response for the handler to propagate as-is.
func (s *ReservationService) RelayToPartner(ctx context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error) {
	result, err := s.partner.CreateReservation(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("partner relay failed")
		return nil, fmt.Errorf("partner relay: %w", err)
	}

	if result.StatusCode >= 200 && result.StatusCode < 300 {
		s.log.Info().Str("user_id", input.UserID).Int("status", result.StatusCode).Msg("partner reservation created")
	} else {
		s.log.Error().Str("user_id", input.UserID).Int("status", result.StatusCode).Msg("partner rejected reservation")
	}
	return result, nil
}
