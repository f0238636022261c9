package service

import (
	"context"
	"time"

	"github.com/nimbuscloud/nimbus-api/internal/model"
)

// Store interfaces consumed by the services. The repository package provides
// the MySQL implementations; tests provide mocks.

type UserStore interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, user *model.User) error
	SeedUpsert(ctx context.Context, user *model.User) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmails(ctx context.Context, emails []string) ([]model.User, error)
	ListByEmailSuffix(ctx context.Context, suffix string) ([]model.User, error)
	GetCredentialByEmail(ctx context.Context, email string) (string, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

type FavoriteStore interface {
	EnsureSchema(ctx context.Context) error
	ListGameIDs(ctx context.Context, userID int64) ([]string, error)
	Add(ctx context.Context, userID int64, gameID string) (*model.Favorite, error)
	Remove(ctx context.Context, userID int64, gameID string) error
}

type ResetTokenStore interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	SweepExpired(ctx context.Context) (int64, error)
	Status(ctx context.Context) (*model.ResetTokenStatus, error)
}

type PostStore interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, post *model.Post) error
	ListRecent(ctx context.Context, limit int) ([]model.Post, error)
}
