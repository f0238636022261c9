package service

import (
	"context"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/model"
)

const recentPostLimit = 20

// PostService handles the posts connectivity smoke test.
type PostService struct {
	posts PostStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// Create validates and stores a post.
func (s *PostService) Create(ctx context.Context, req model.CreatePostRequest) (*model.PostResponse, error) {
	if req.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if req.Content == "" {
		return nil, apperrors.Validation("content is required")
	}
	if req.Author == "" {
		return nil, apperrors.Validation("author is required")
	}

	post := &model.Post{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	return &model.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		CreatedAt: post.CreatedAt,
	}, nil
}

// ListRecent returns the latest posts, newest first.
func (s *PostService) ListRecent(ctx context.Context) ([]model.PostResponse, error) {
	posts, err := s.posts.ListRecent(ctx, recentPostLimit)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	result := make([]model.PostResponse, len(posts))
	for i, p := range posts {
		result[i] = model.PostResponse{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Author:    p.Author,
			CreatedAt: p.CreatedAt,
		}
	}
	return result, nil
}
