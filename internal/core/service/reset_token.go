package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
)

// resetTokenBytes yields 64 URL-safe characters once base64-encoded.
const resetTokenBytes = 48

// ResetTokenManager implements the single-use, time-limited reset-token
// protocol. Only a bcrypt hash of the token is ever persisted; the plaintext
// is returned once for delivery and never stored.
type ResetTokenManager struct {
	repo   ports.ResetTokenRepository
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewResetTokenManager(repo ports.ResetTokenRepository, hasher ports.PasswordHasher) *ResetTokenManager {
	return &ResetTokenManager{repo: repo, hasher: hasher, now: time.Now}
}

// Generate creates a fresh high-entropy token for the email and persists its
// hash, replacing any prior outstanding record. Prior tokens become
// permanently invalid (last writer wins).
func (m *ResetTokenManager) Generate(ctx context.Context, email string) (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reset token entropy: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	hash, err := m.hasher.Hash(token)
	if err != nil {
		return "", fmt.Errorf("hash reset token: %w", err)
	}

	record := &domain.ResetToken{
		Email:     email,
		TokenHash: hash,
		CreatedAt: m.now().UTC(),
	}
	if err := m.repo.Upsert(ctx, record); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// Consume validates the presented token and deletes the record before the
// caller applies the new password. The delete is filtered by the stored hash
// and reports whether anything was removed, so two concurrent redemptions of
// the same token yield exactly one success.
func (m *ResetTokenManager) Consume(ctx context.Context, email, token string) error {
	record, err := m.repo.Find(ctx, email)
	if err != nil {
		return err
	}

	if !m.hasher.Verify(token, record.TokenHash) {
		return domain.ErrInvalidResetToken
	}

	// Expired records are inert: rejected but never consumed. A new
	// forgot-password request overwrites them.
	if record.Expired(m.now().UTC()) {
		return domain.ErrResetTokenExpired
	}

	deleted, err := m.repo.Delete(ctx, email, record.TokenHash)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if !deleted {
		// A concurrent redemption won the race.
		return domain.ErrInvalidResetToken
	}
	return nil
}
