package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nimbuscloud/nimbus-api/internal/model"
)

var (
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrDuplicateFavorite = errors.New("favorite already exists")
)

// FavoriteRepository handles favorite persistence operations.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// EnsureSchema creates the favorites table if it does not exist. The unique
// key enforces at most one row per (user, game) pair; the foreign key makes
// user deletion cascade.
func (r *FavoriteRepository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		game_id VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_favorites_user_game (user_id, game_id),
		CONSTRAINT fk_favorites_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	)`

	_, err := r.db.ExecContext(ctx, query)
	return err
}

// ListGameIDs retrieves the game ids a user has favorited, newest first.
func (r *FavoriteRepository) ListGameIDs(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT game_id FROM favorites WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gameIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		gameIDs = append(gameIDs, id)
	}

	return gameIDs, rows.Err()
}

// Add inserts a favorite for the (user, game) pair.
func (r *FavoriteRepository) Add(ctx context.Context, userID int64, gameID string) (*model.Favorite, error) {
	query := `INSERT INTO favorites (user_id, game_id) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, userID, gameID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Favorite{ID: id, UserID: userID, GameID: gameID}, nil
}

// Remove deletes the favorite for the (user, game) pair.
func (r *FavoriteRepository) Remove(ctx context.Context, userID int64, gameID string) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND game_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, gameID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}
