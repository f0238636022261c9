package model

import "time"

// Post represents a simple content row, used as a connectivity smoke test.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListPostsResponse represents a post listing.
type ListPostsResponse struct {
	Success bool           `json:"success"`
	Posts   []PostResponse `json:"posts"`
}

// CreatePostResponse represents a successfully created post.
type CreatePostResponse struct {
	Success bool         `json:"success"`
	Post    PostResponse `json:"post"`
}
