package ports

import "context"

// PartnerClient relays reservations to the external reservation service.
type PartnerClient interface {
	// CreateReservation posts the reservation and returns the partner's
	// verbatim response. A non-2xx partner status is not an error; transport
	// failures are.
	CreateReservation(ctx context.Context, input PartnerReservationInput) (*PartnerResult, error)
}
