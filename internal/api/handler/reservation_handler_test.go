package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
)

type stubReservationService struct {
	createFn  func(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error)
	listFn    func(ctx context.Context, userID string) ([]*domain.Reservation, error)
	listAllFn func(ctx context.Context) ([]*domain.Reservation, error)
	cancelFn  func(ctx context.Context, id, userID string) (*domain.Reservation, error)
	relayFn   func(ctx context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error)
}

func (s *stubReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	return s.createFn(ctx, input)
}

func (s *stubReservationService) ListForUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return s.listFn(ctx, userID)
}

func (s *stubReservationService) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	return s.listAllFn(ctx)
}

func (s *stubReservationService) Cancel(ctx context.Context, id, userID string) (*domain.Reservation, error) {
	return s.cancelFn(ctx, id, userID)
}

func (s *stubReservationService) RelayToPartner(ctx context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error) {
	return s.relayFn(ctx, input)
}

var _ ports.ReservationService = (*stubReservationService)(nil)

func currentUserStub() *stubAuthService {
	return &stubAuthService{
		currentUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice", Email: "alice@x.com"}, nil
		},
	}
}

func TestReservationHandler_Create(t *testing.T) {
	var got ports.CreateReservationInput
	svc := &stubReservationService{
		createFn: func(_ context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
			got = input
			return &domain.Reservation{ID: "res-1", UserID: input.UserID, Status: domain.ReservationActive}, nil
		},
	}
	h := NewReservationHandler(svc, currentUserStub())

	c, rec := newTestContext(t, http.MethodPost, "/reservations",
		`{"hotel_id":"hotel-9","room_type":"double","check_in":"2026-10-01","check_out":"2026-10-04"}`)
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleClient)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got.UserID != "user-1" || got.HotelID != "hotel-9" {
		t.Fatalf("unexpected service input: %+v", got)
	}
	if !got.CheckOut.After(got.CheckIn) {
		t.Fatalf("dates not parsed: in=%v out=%v", got.CheckIn, got.CheckOut)
	}
}

func TestReservationHandler_Create_BadDates(t *testing.T) {
	h := NewReservationHandler(&stubReservationService{}, currentUserStub())

	cases := []string{
		`{"hotel_id":"h","room_type":"double","check_in":"01-10-2026","check_out":"2026-10-04"}`, // wrong layout
		`{"hotel_id":"h","room_type":"double","check_in":"2026-10-04","check_out":"2026-10-01"}`, // out before in
		`{"hotel_id":"h","room_type":"double","check_out":"2026-10-04"}`,                         // missing check_in
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/reservations", body)
		c.Set("user_id", "user-1")
		assertBadRequest(t, h.Create(c))
	}
}

func TestReservationHandler_List(t *testing.T) {
	svc := &stubReservationService{
		listFn: func(_ context.Context, userID string) ([]*domain.Reservation, error) {
			return []*domain.Reservation{{ID: "res-1", UserID: userID}}, nil
		},
	}
	h := NewReservationHandler(svc, currentUserStub())

	c, rec := newTestContext(t, http.MethodGet, "/reservations", "")
	c.Set("user_id", "user-1")

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var out []domain.Reservation
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if len(out) != 1 || out[0].UserID != "user-1" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestReservationHandler_Cancel(t *testing.T) {
	svc := &stubReservationService{
		cancelFn: func(_ context.Context, id, userID string) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, UserID: userID, Status: domain.ReservationCancelled}, nil
		},
	}
	h := NewReservationHandler(svc, currentUserStub())

	c, rec := newTestContext(t, http.MethodPost, "/reservations/res-1/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("res-1")
	c.Set("user_id", "user-1")

	if err := h.Cancel(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp reservationResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Reservation == nil || resp.Reservation.Status != domain.ReservationCancelled {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReservationHandler_RelayToPartner(t *testing.T) {
	var got ports.PartnerReservationInput
	svc := &stubReservationService{
		relayFn: func(_ context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error) {
			got = input
			return &ports.PartnerResult{StatusCode: 201, Body: map[string]any{"id": float64(11)}}, nil
		},
	}
	h := NewReservationHandler(svc, currentUserStub())

	c, rec := newTestContext(t, http.MethodPost, "/reservations/partner",
		`{"hotel_id":3,"room_ids":[1,2],"start_date":"2026-11-01","end_date":"2026-11-04"}`)
	c.Set("user_id", "user-1")

	if err := h.RelayToPartner(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	// Identity comes from the authenticated subject, not the payload.
	if got.UserID != "user-1" || got.UserName != "Alice" || got.UserEmail != "alice@x.com" {
		t.Fatalf("client identity not attached: %+v", got)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp)
	}
}

func TestReservationHandler_RelayToPartner_RejectionPropagated(t *testing.T) {
	svc := &stubReservationService{
		relayFn: func(context.Context, ports.PartnerReservationInput) (*ports.PartnerResult, error) {
			return &ports.PartnerResult{StatusCode: 422, Body: map[string]any{"message": "rooms unavailable"}}, nil
		},
	}
	h := NewReservationHandler(svc, currentUserStub())

	c, rec := newTestContext(t, http.MethodPost, "/reservations/partner",
		`{"hotel_id":3,"room_ids":[1],"start_date":"2026-11-01","end_date":"2026-11-04"}`)
	c.Set("user_id", "user-1")

	if err := h.RelayToPartner(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != 422 {
		t.Fatalf("status = %d, want partner's 422", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != false {
		t.Fatalf("expected success=false, got %v", resp)
	}
}

func TestReservationHandler_RelayToPartner_BadRange(t *testing.T) {
	h := NewReservationHandler(&stubReservationService{}, currentUserStub())

	cases := []string{
		`{"hotel_id":3,"room_ids":[1],"start_date":"2026-11-04","end_date":"2026-11-01"}`, // end before start
		`{"hotel_id":3,"room_ids":[1],"start_date":"2026-11-01","end_date":"2026-11-01"}`, // zero nights
		`{"hotel_id":3,"room_ids":[],"start_date":"2026-11-01","end_date":"2026-11-04"}`,  // no rooms
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/reservations/partner", body)
		c.Set("user_id", "user-1")
		assertBadRequest(t, h.RelayToPartner(c))
	}
}
