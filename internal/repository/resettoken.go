package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nimbuscloud/nimbus-api/internal/model"
)

var ErrTokenNotFound = errors.New("reset token not found")

// ResetTokenRepository handles password-reset-token persistence operations.
type ResetTokenRepository struct {
	db *sql.DB
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(db *sql.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

// EnsureSchema creates the reset-token table if it does not exist, with a
// unique index on the token value and a lookup index on the expiry. The
// unique user_id key keeps at most one live token per user. Safe to call
// repeatedly.
func (r *ResetTokenRepository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		token VARCHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reset_tokens_user (user_id),
		UNIQUE KEY uq_reset_tokens_token (token),
		KEY idx_reset_tokens_expires (expires_at),
		CONSTRAINT fk_reset_tokens_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	)`

	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Upsert stores the single live token for a user, replacing any previous one.
func (r *ResetTokenRepository) Upsert(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), expires_at = VALUES(expires_at), created_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query, userID, token, expiresAt)
	return err
}

// GetByToken retrieves a reset token row by its opaque token value.
func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	query := `SELECT id, user_id, token, expires_at, created_at
		FROM password_reset_tokens WHERE token = ?`

	t := &model.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return t, nil
}

// DeleteByUserID removes a user's token after it has been consumed.
func (r *ResetTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE user_id = ?`, userID)
	return err
}

// SweepExpired deletes every token whose expiry has passed and reports how
// many rows were removed.
func (r *ResetTokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Status reports table existence, column metadata and live/expired token
// counts for the admin status endpoint.
func (r *ResetTokenRepository) Status(ctx context.Context) (*model.ResetTokenStatus, error) {
	status := &model.ResetTokenStatus{Success: true}

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = 'password_reset_tokens'`).Scan(&exists)
	if err != nil {
		return nil, err
	}
	status.TableExists = exists > 0
	if !status.TableExists {
		return status, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT column_name, column_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = 'password_reset_tokens'
		ORDER BY ordinal_position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var col model.ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		status.Columns = append(status.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT
		COUNT(CASE WHEN expires_at > NOW() THEN 1 END),
		COUNT(CASE WHEN expires_at <= NOW() THEN 1 END)
		FROM password_reset_tokens`).Scan(&status.LiveTokens, &status.ExpiredTokens)
	if err != nil {
		return nil, err
	}

	return status, nil
}
