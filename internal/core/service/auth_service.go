package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelink/booking-api/internal/core/domain"
	"github.com/travelink/booking-api/internal/core/ports"
)

// ResetLimiter throttles forgot-password requests per email (Redis-backed).
type ResetLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements the credential lifecycle: registration, login and
// the password change/forgot/reset flows.
type AuthService struct {
	users      ports.UserRepository
	resets     *ResetTokenManager
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
	dispatcher ports.NotificationDispatcher
	mailer     ports.EmailSender
	limiter    ResetLimiter
	resetURL   string
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	resets *ResetTokenManager,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	dispatcher ports.NotificationDispatcher,
	mailer ports.EmailSender,
	limiter ResetLimiter,
	resetURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		resets:     resets,
		hasher:     hasher,
		tokens:     tokens,
		dispatcher: dispatcher,
		mailer:     mailer,
		limiter:    limiter,
		resetURL:   resetURL,
		log:        log,
	}
}

// normalizeEmail makes email comparison case-insensitive at the edges of
// every flow; the store only ever sees the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the default client role unless another valid
// role is requested. The welcome email is fire-and-forget.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("register: unknown role %q", role)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(ports.Notification{
		Key: created.Email,
		Email: &ports.EmailNotification{
			To:      created.Email,
			Subject: "Welcome to Travelink",
			Body:    fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now book hotel rooms with us.", created.Name),
		},
	})

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Collapse "no such user" into the credential error so responses
		// cannot be used to enumerate accounts. A store fault is not a
		// credential failure and must surface as an internal error.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		// Signing failure is an internal fault, never a credential failure.
		return "", nil, err
	}

	return token, user, nil
}

// ChangePassword rotates the password of an authenticated subject after
// re-verifying the current one. Email and webhook notifications are
// best-effort and isolated from each other and from the response.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrCurrentPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("change password: update: %w", err)
	}

	now := time.Now().UTC()
	s.dispatcher.Enqueue(ports.Notification{
		Key: user.Email,
		Email: &ports.EmailNotification{
			To:      user.Email,
			Subject: "Your password was changed",
			Body: fmt.Sprintf("Hi %s,\n\nYour password was changed on %s.\n\nIf this wasn't you, contact support immediately.",
				user.Name, now.Format("02/01/2006 15:04:05")),
		},
	})
	s.dispatcher.Enqueue(ports.Notification{
		Key: user.Email,
		Webhook: &ports.WebhookNotification{
			Payload: map[string]any{
				"event":      "password_changed",
				"user_id":    user.ID,
				"user_email": user.Email,
				"user_name":  user.Name,
				"timestamp":  now.Format(time.RFC3339),
			},
		},
	})

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// ForgotPassword generates a reset token and emails a reset link. This is
// the one flow where delivery failure is surfaced: without the email the
// token is undeliverable.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		// Throttle store down: log and proceed rather than blocking resets.
		s.log.Warn().Err(err).Msg("reset limiter unavailable, allowing request")
	} else if !allowed {
		return domain.ErrTooManyResetRequests
	}

	token, err := s.resets.Generate(ctx, email)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nUse the link below to reset your password. It expires in one hour.\n\n%s?token=%s&email=%s\n\nIf you didn't request this, you can ignore this email.",
		user.Name, s.resetURL, token, email,
	)
	if err := s.mailer.SendEmail(ctx, email, "Reset your password", body); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
		return fmt.Errorf("%w: reset email", domain.ErrDeliveryFailed)
	}

	s.log.Info().Str("user_id", user.ID).Msg("reset token issued")
	return nil
}

// ResetPassword redeems a reset token and applies the new password. The
// token is consumed atomically before the write; a failed write is surfaced
// as an internal error, never swallowed.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = normalizeEmail(email)

	if err := s.resets.Consume(ctx, email, token); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("reset password: update: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// CurrentUser returns the public view of the authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
