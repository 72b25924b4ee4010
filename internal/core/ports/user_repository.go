package ports

import (
	"context"

	"github.com/travelink/booking-api/internal/core/domain"
)

// UserRepository defines the credential-store contract for user records.
type UserRepository interface {
	// FindByEmail matches case-insensitively. Absent → domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID looks up a user by its opaque identifier.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists a new user. Duplicate email → domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// ResetTokenRepository defines the credential-store contract for outstanding
// password-reset records. All operations are atomic per email.
type ResetTokenRepository interface {
	// Upsert replaces any prior record for the email (last writer wins).
	Upsert(ctx context.Context, record *domain.ResetToken) error
	// Find returns the outstanding record. Absent → domain.ErrInvalidResetToken.
	Find(ctx context.Context, email string) (*domain.ResetToken, error)
	// Delete removes the record matching both email and tokenHash, reporting
	// whether a record was actually removed. A false result means a concurrent
	// redemption already consumed it.
	Delete(ctx context.Context, email, tokenHash string) (bool, error)
}
