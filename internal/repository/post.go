package repository

import (
	"context"
	"database/sql"

	"github.com/nimbuscloud/nimbus-api/internal/model"
)

// PostRepository handles post persistence operations. Posts exist only as an
// end-to-end connectivity check.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// EnsureSchema creates the posts table if it does not exist.
func (r *PostRepository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS posts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		author VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Create inserts a new post and sets the generated ID.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (title, content, author) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.Author)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// ListRecent retrieves the most recent posts, newest first.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]model.Post, error) {
	query := `SELECT id, title, content, author, created_at, updated_at
		FROM posts ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
