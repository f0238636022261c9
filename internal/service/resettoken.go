package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/crypto"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
)

const resetTokenTTL = time.Hour

// ResetTokenService handles password-reset tokens: administration (schema,
// status, expiry sweep) and the request/confirm flow.
type ResetTokenService struct {
	tokens ResetTokenStore
	users  UserStore
}

// NewResetTokenService creates a new ResetTokenService.
func NewResetTokenService(tokens ResetTokenStore, users UserStore) *ResetTokenService {
	return &ResetTokenService{tokens: tokens, users: users}
}

// EnsureSchema creates the reset-token table and indexes. Idempotent.
func (s *ResetTokenService) EnsureSchema(ctx context.Context) error {
	if err := s.tokens.EnsureSchema(ctx); err != nil {
		return apperrors.Internal("internal server error", err)
	}
	return nil
}

// Status reports table existence, column metadata and live/expired counts.
func (s *ResetTokenService) Status(ctx context.Context) (*model.ResetTokenStatus, error) {
	status, err := s.tokens.Status(ctx)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}
	return status, nil
}

// Sweep deletes all expired tokens and reports the count removed.
func (s *ResetTokenService) Sweep(ctx context.Context) (*model.SweepResponse, error) {
	removed, err := s.tokens.SweepExpired(ctx)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	return &model.SweepResponse{Success: true, Removed: removed}, nil
}

// RequestReset issues the single live token for the account behind the
// email. The response is identical whether or not the account exists, so
// the endpoint cannot be used to enumerate accounts.
func (s *ResetTokenService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.Validation("email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return apperrors.Internal("internal server error", err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(resetTokenTTL)

	if err := s.tokens.Upsert(ctx, user.ID, token, expiresAt); err != nil {
		return apperrors.Internal("internal server error", err)
	}

	slog.Info("password reset token issued", "user_id", user.ID, "expires_at", expiresAt)
	return nil
}

// ConfirmReset consumes a token and sets the new password. Unknown and
// expired tokens are indistinguishable to the caller.
func (s *ResetTokenService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.Validation("token is required")
	}
	if newPassword == "" {
		return apperrors.Validation("newPassword is required")
	}

	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return apperrors.Auth("invalid or expired token")
		}
		return apperrors.Internal("internal server error", err)
	}

	if time.Now().After(t.ExpiresAt) {
		return apperrors.Auth("invalid or expired token")
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("internal server error", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, t.UserID, hash); err != nil {
		return apperrors.Internal("internal server error", err)
	}

	if err := s.tokens.DeleteByUserID(ctx, t.UserID); err != nil {
		slog.Warn("failed to delete consumed reset token", "user_id", t.UserID, "error", err)
	}

	return nil
}
