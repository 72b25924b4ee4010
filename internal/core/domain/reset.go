package domain

import (
	"errors"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays redeemable.
const ResetTokenTTL = time.Hour

var ErrInvalidResetToken = errors.New("invalid reset token")
var ErrResetTokenExpired = errors.New("reset token expired")
var ErrTooManyResetRequests = errors.New("too many reset requests")
var ErrDeliveryFailed = errors.New("could not deliver notification")

// ResetToken is the persisted form of an outstanding password-reset request.
// Only the hash of the token is ever stored; the plaintext exists solely in
// the reset email sent to the user. At most one record lives per email.
type ResetToken struct {
	Email     string    `json:"email"`
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the record is older than ResetTokenTTL at now.
// Expired records are inert: they are never consumed, only overwritten by a
// new forgot-password request.
func (r ResetToken) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > ResetTokenTTL
}
