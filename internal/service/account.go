package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/crypto"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
)

// TestEmailDomain is the email suffix identifying seeded test accounts.
const TestEmailDomain = "@nimbus.test"

type seedAccount struct {
	email     string
	username  string
	firstName string
	lastName  string
}

// The fixed seed set. Every account shares the same known password and a
// verified, active state so it is usable immediately after seeding.
var seedAccounts = []seedAccount{
	{"mario.rossi" + TestEmailDomain, "mario.rossi", "Mario", "Rossi"},
	{"giulia.bianchi" + TestEmailDomain, "giulia.bianchi", "Giulia", "Bianchi"},
	{"luca.verdi" + TestEmailDomain, "luca.verdi", "Luca", "Verdi"},
}

const seedPassword = "Test1234!"

// AccountService handles account lifecycle and user search operations.
type AccountService struct {
	users UserStore
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

// CheckDeletable reports the user's public fields plus the associated record
// types a deletion would cascade into.
func (s *AccountService) CheckDeletable(ctx context.Context, userID string) (*model.CheckDeletableResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("internal server error", err)
	}

	return &model.CheckDeletableResponse{
		Success: true,
		User:    user.ToResponse(),
		AssociatedData: map[string]bool{
			"favorites":   true,
			"resetTokens": true,
		},
	}, nil
}

// Delete verifies the confirmation password and hard-deletes the account.
// All validation happens before the mutating call; favorites and reset
// tokens are removed by foreign-key cascade. The only audit trail is a
// single log line.
func (s *AccountService) Delete(ctx context.Context, userID, confirmPassword string) (*model.DeletedUser, error) {
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	if confirmPassword == "" {
		return nil, apperrors.Validation("confirmPassword is required")
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("internal server error", err)
	}

	hash, err := s.users.GetCredentialByEmail(ctx, user.Email)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}
	if hash == "" {
		return nil, apperrors.Internal("password hash not found", nil)
	}

	if !crypto.VerifyPassword(confirmPassword, hash) {
		return nil, apperrors.Auth("Password non corretta")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("internal server error", err)
	}

	slog.Info("account deleted", "email", user.Email, "user_id", user.ID)

	return &model.DeletedUser{
		ID:       userID,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// SeedTestAccounts ensures the users table exists and upserts the fixed seed
// set. A failing row is logged and skipped; the batch never aborts.
func (s *AccountService) SeedTestAccounts(ctx context.Context) (*model.SeedResult, error) {
	if err := s.users.EnsureSchema(ctx); err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	result := &model.SeedResult{Success: true, Accounts: []model.UserResponse{}}

	for _, seed := range seedAccounts {
		hash, err := crypto.HashPassword(seedPassword)
		if err != nil {
			slog.Warn("skipping seed account: hash failed", "email", seed.email, "error", err)
			result.Skipped++
			continue
		}

		user := &model.User{
			Email:         seed.email,
			Username:      seed.username,
			PasswordHash:  hash,
			FirstName:     nullString(seed.firstName),
			LastName:      nullString(seed.lastName),
			Role:          "user",
			IsActive:      true,
			EmailVerified: true,
		}

		created, err := s.users.SeedUpsert(ctx, user)
		if err != nil {
			slog.Warn("skipping seed account: upsert failed", "email", seed.email, "error", err)
			result.Skipped++
			continue
		}

		if created {
			result.Created++
		} else {
			result.Skipped++
		}
		result.Accounts = append(result.Accounts, user.ToResponse())
	}

	return result, nil
}

// ListTestAccounts returns all seeded test accounts, newest first.
func (s *AccountService) ListTestAccounts(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.ListByEmailSuffix(ctx, TestEmailDomain)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	return usersToResponse(users), nil
}

// SearchByEmail looks up a user by exact email. A missing user is not an
// error: the caller gets (nil, nil).
func (s *AccountService) SearchByEmail(ctx context.Context, email string) (*model.UserResponse, error) {
	return s.searchOne(s.users.GetByEmail, ctx, email)
}

// SearchByUsername looks up a user by exact username.
func (s *AccountService) SearchByUsername(ctx context.Context, username string) (*model.UserResponse, error) {
	return s.searchOne(s.users.GetByUsername, ctx, username)
}

func (s *AccountService) searchOne(lookup func(context.Context, string) (*model.User, error), ctx context.Context, key string) (*model.UserResponse, error) {
	user, err := lookup(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("internal server error", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

// SearchByEmails looks up users by a list of emails. Missing entries are
// omitted from the result, never erroring.
func (s *AccountService) SearchByEmails(ctx context.Context, emails []string) ([]model.UserResponse, error) {
	if len(emails) == 0 {
		return nil, apperrors.Validation("emails list is required")
	}

	users, err := s.users.GetByEmails(ctx, emails)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	return usersToResponse(users), nil
}

func usersToResponse(users []model.User) []model.UserResponse {
	result := make([]model.UserResponse, len(users))
	for i, u := range users {
		result[i] = u.ToResponse()
	}
	return result
}

func parseUserID(userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.Validation("userId is required")
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, apperrors.Validation("userId must be numeric")
	}

	return id, nil
}
