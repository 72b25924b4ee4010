package partner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/travelink/booking-api/internal/core/ports"
)

func sampleInput() ports.PartnerReservationInput {
	return ports.PartnerReservationInput{
		HotelID:   3,
		RoomIDs:   []int{1, 2},
		Start:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC),
		UserID:    "user-1",
		UserName:  "Alice",
		UserEmail: "alice@x.com",
	}
}

func TestClient_CreateReservation(t *testing.T) {
	var gotPath, gotSecret string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSecret = r.Header.Get("X-Webhook-Secret")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "shh")
	result, err := c.CreateReservation(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	if gotPath != "/api/Reservas" {
		t.Fatalf("path = %q, want /api/Reservas", gotPath)
	}
	if gotSecret != "shh" {
		t.Fatalf("secret header = %q, want shh", gotSecret)
	}
	if result.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", result.StatusCode)
	}
	if result.Body["id"] != float64(42) {
		t.Fatalf("body not propagated: %v", result.Body)
	}

	// Wire contract with the partner service.
	if gotBody["hotelId"] != float64(3) {
		t.Errorf("hotelId = %v", gotBody["hotelId"])
	}
	if rooms, ok := gotBody["habitacionesIds"].([]any); !ok || len(rooms) != 2 {
		t.Errorf("habitacionesIds = %v", gotBody["habitacionesIds"])
	}
	if gotBody["estadoReserva"] != "activa" {
		t.Errorf("estadoReserva = %v", gotBody["estadoReserva"])
	}
	if gotBody["clienteId"] != "USER-user-1" {
		t.Errorf("clienteId = %v", gotBody["clienteId"])
	}
	if gotBody["clienteNombre"] != "Alice" || gotBody["clienteEmail"] != "alice@x.com" {
		t.Errorf("client identity = %v / %v", gotBody["clienteNombre"], gotBody["clienteEmail"])
	}
	if gotBody["fechaInicio"] != "2026-11-01T00:00:00Z" {
		t.Errorf("fechaInicio = %v", gotBody["fechaInicio"])
	}
}

func TestClient_CreateReservation_RejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "rooms unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	result, err := c.CreateReservation(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("rejection must come back as a result: %v", err)
	}
	if result.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", result.StatusCode)
	}
	if result.Body["message"] != "rooms unavailable" {
		t.Fatalf("body = %v", result.Body)
	}
}

func TestClient_CreateReservation_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	result, err := c.CreateReservation(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("non-JSON body must not error: %v", err)
	}
	if result.StatusCode != http.StatusBadGateway || result.Body != nil {
		t.Fatalf("got status=%d body=%v", result.StatusCode, result.Body)
	}
}

func TestClient_CreateReservation_TransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "")
	if _, err := c.CreateReservation(context.Background(), sampleInput()); err == nil {
		t.Fatalf("expected transport error")
	}
}
