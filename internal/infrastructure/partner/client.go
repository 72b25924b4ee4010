package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/travelink/booking-api/internal/core/ports"
)

const relayTimeout = 10 * time.Second

// Client relays reservations to the external reservation service. The wire
// format follows the partner's contract, including the shared-secret header.
type Client struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: relayTimeout},
	}
}

type partnerReservation struct {
	HotelID     int    `json:"hotelId"`
	RoomIDs     []int  `json:"habitacionesIds"`
	Start       string `json:"fechaInicio"`
	End         string `json:"fechaFin"`
	Status      string `json:"estadoReserva"`
	ClientID    string `json:"clienteId"`
	ClientName  string `json:"clienteNombre"`
	ClientEmail string `json:"clienteEmail"`
}

// CreateReservation posts the reservation and returns the partner's response
// verbatim. Partner-side rejections are results, not errors; only transport
// failures error out.
func (c *Client) CreateReservation(ctx context.Context, input ports.PartnerReservationInput) (*ports.PartnerResult, error) {
	payload := partnerReservation{
		HotelID:     input.HotelID,
		RoomIDs:     input.RoomIDs,
		Start:       input.Start.UTC().Format(time.RFC3339),
		End:         input.End.UTC().Format(time.RFC3339),
		Status:      "activa",
		ClientID:    fmt.Sprintf("USER-%s", input.UserID),
		ClientName:  input.UserName,
		ClientEmail: input.UserEmail,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("partner marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/Reservas", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("partner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("partner post: %w", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		// Non-JSON partner responses still carry a useful status code.
		decoded = nil
	}

	return &ports.PartnerResult{StatusCode: resp.StatusCode, Body: decoded}, nil
}
