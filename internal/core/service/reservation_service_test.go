package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
)

type stubReservationRepo struct {
	mu           sync.Mutex
	nextID       int
	reservations map[string]*domain.Reservation
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{reservations: make(map[string]*domain.Reservation)}
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *res
	clone.ID = fmt.Sprintf("res-%d", r.nextID)
	stored := clone
	r.reservations[clone.ID] = &stored
	return &clone, nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id, userID string) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok || (userID != "" && res.UserID != userID) {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if userID == "" || res.UserID == userID {
			clone := *res
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

type stubPartnerClient struct {
	result *ports.PartnerResult
	err    error
	got    *ports.PartnerReservationInput
}

func (c *stubPartnerClient) CreateReservation(_ context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error) {
	c.got = &input
	return c.result, c.err
}

func newReservationService(repo ports.ReservationRepository, partner ports.PartnerClient) *ReservationService {
	return NewReservationService(repo, partner, zerolog.Nop())
}

func TestReservationService_Create(t *testing.T) {
	repo := newStubReservationRepo()
	svc := newReservationService(repo, &stubPartnerClient{})

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), ports.CreateReservationInput{
		UserID:   "user-1",
		HotelID:  "hotel-9",
		RoomType: "double",
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created reservation has no id")
	}
	if created.Status != domain.ReservationActive {
		t.Fatalf("status = %q, want active", created.Status)
	}
}

func TestReservationService_Create_InvalidDates(t *testing.T) {
	svc := newReservationService(newStubReservationRepo(), &stubPartnerClient{})

	checkIn := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), ports.CreateReservationInput{
		UserID:   "user-1",
		HotelID:  "hotel-9",
		RoomType: "double",
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, -1),
	})
	if err == nil {
		t.Fatalf("expected error for check_out before check_in")
	}
}

func TestReservationService_Cancel(t *testing.T) {
	repo := newStubReservationRepo()
	svc := newReservationService(repo, &stubPartnerClient{})

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	created, _ := svc.Create(context.Background(), ports.CreateReservationInput{
		UserID: "user-1", HotelID: "hotel-9", RoomType: "suite",
		CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
	})

	cancelled, err := svc.Cancel(context.Background(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.ReservationCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	// Cancelling again is a no-op, not an error.
	if _, err := svc.Cancel(context.Background(), created.ID, "user-1"); err != nil {
		t.Fatalf("second cancel should be idempotent: %v", err)
	}
}

func TestReservationService_Cancel_OtherUsersReservation(t *testing.T) {
	repo := newStubReservationRepo()
	svc := newReservationService(repo, &stubPartnerClient{})

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	created, _ := svc.Create(context.Background(), ports.CreateReservationInput{
		UserID: "user-1", HotelID: "hotel-9", RoomType: "suite",
		CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
	})

	if _, err := svc.Cancel(context.Background(), created.ID, "user-2"); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("foreign reservation must read as not found, got %v", err)
	}
}

func TestReservationService_ListForUser(t *testing.T) {
	repo := newStubReservationRepo()
	svc := newReservationService(repo, &stubPartnerClient{})

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for _, userID := range []string{"user-1", "user-1", "user-2"} {
		_, _ = svc.Create(context.Background(), ports.CreateReservationInput{
			UserID: userID, HotelID: "hotel-9", RoomType: "double",
			CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1),
		})
	}

	mine, err := svc.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d reservations, want 2", len(mine))
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d reservations, want 3", len(all))
	}
}

func TestReservationService_RelayToPartner(t *testing.T) {
	partner := &stubPartnerClient{result: &ports.PartnerResult{
		StatusCode: 201,
		Body:       map[string]any{"id": float64(7)},
	}}
	svc := newReservationService(newStubReservationRepo(), partner)

	input := ports.PartnerReservationInput{
		HotelID:   3,
		RoomIDs:   []int{1, 2},
		Start:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC),
		UserID:    "user-1",
		UserName:  "Alice",
		UserEmail: "alice@x.com",
	}
	result, err := svc.RelayToPartner(context.Background(), input)
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if result.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", result.StatusCode)
	}
	if partner.got == nil || partner.got.HotelID != 3 || len(partner.got.RoomIDs) != 2 {
		t.Fatalf("partner did not receive the reservation input: %+v", partner.got)
	}
}

func TestReservationService_RelayToPartner_NonSuccessPassesThrough(t *testing.T) {
	partner := &stubPartnerClient{result: &ports.PartnerResult{
		StatusCode: 422,
		Body:       map[string]any{"message": "rooms unavailable"},
	}}
	svc := newReservationService(newStubReservationRepo(), partner)

	result, err := svc.RelayToPartner(context.Background(), ports.PartnerReservationInput{HotelID: 1})
	if err != nil {
		t.Fatalf("partner rejection must not be a transport error: %v", err)
	}
	if result.StatusCode != 422 {
		t.Fatalf("status = %d, want 422", result.StatusCode)
	}
}

func TestReservationService_RelayToPartner_TransportError(t *testing.T) {
	partner := &stubPartnerClient{err: errors.New("connection refused")}
	svc := newReservationService(newStubReservationRepo(), partner)

	if _, err := svc.RelayToPartner(context.Background(), ports.PartnerReservationInput{HotelID: 1}); err == nil {
		t.Fatalf("expected transport error to surface")
	}
}
