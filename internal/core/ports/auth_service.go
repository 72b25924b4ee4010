package ports

import (
	"context"

	"github.com/travelink/booking-api/internal/core/domain"
)

// AuthService covers the credential lifecycle: registration, login, and the
// password change/forgot/reset flows.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	// CurrentUser returns the public view of the authenticated subject.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
