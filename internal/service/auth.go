package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/crypto"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	users  UserStore
	secret string
	expiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, expiry: expiry}
}

// Register creates a new user account and returns the user plus a session token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, string, error) {
	if req.Email == "" {
		return model.UserResponse{}, "", apperrors.Validation("email is required")
	}
	if req.Username == "" {
		return model.UserResponse{}, "", apperrors.Validation("username is required")
	}
	if req.Password == "" {
		return model.UserResponse{}, "", apperrors.Validation("password is required")
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	user := &model.User{
		Email:         req.Email,
		Username:      req.Username,
		PasswordHash:  hash,
		FirstName:     nullString(req.FirstName),
		LastName:      nullString(req.LastName),
		Role:          "user",
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, "", apperrors.Conflict("email or username already in use")
		}
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	token, err := crypto.GenerateSessionToken(user.ID, user.Username, s.secret, s.expiry)
	if err != nil {
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	return user.ToResponse(), token, nil
}

// Login authenticates a user and returns the user plus a session token.
// Inactive and unverified accounts are rejected here, where the credentials
// are presented.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.UserResponse, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, "", apperrors.Auth("invalid email or password")
		}
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	hash, err := s.users.GetCredentialByEmail(ctx, user.Email)
	if err != nil {
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	if !crypto.VerifyPassword(req.Password, hash) {
		return model.UserResponse{}, "", apperrors.Auth("invalid email or password")
	}

	if !user.IsActive {
		return model.UserResponse{}, "", apperrors.Auth("account is disabled")
	}
	if !user.EmailVerified {
		return model.UserResponse{}, "", apperrors.Auth("email not verified")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	token, err := crypto.GenerateSessionToken(user.ID, user.Username, s.secret, s.expiry)
	if err != nil {
		return model.UserResponse{}, "", apperrors.Internal("internal server error", err)
	}

	return user.ToResponse(), token, nil
}

// Profile retrieves the public fields of the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apperrors.NotFound("user not found")
		}
		return model.UserResponse{}, apperrors.Internal("internal server error", err)
	}

	return user.ToResponse(), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
