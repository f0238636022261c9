package service

import (
	"context"
	"errors"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
)

// FavoriteService handles favorite game business logic.
type FavoriteService struct {
	favorites FavoriteStore
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// List returns the game ids a user has favorited.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]string, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	gameIDs, err := s.favorites.ListGameIDs(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("internal server error", err)
	}

	if gameIDs == nil {
		gameIDs = []string{}
	}
	return gameIDs, nil
}

// Add favorites a game for a user. Adding the same pair twice is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID, gameID string) (*model.FavoriteResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return nil, apperrors.Validation("gameId is required")
	}

	fav, err := s.favorites.Add(ctx, id, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return nil, apperrors.Conflict("favorite already exists")
		}
		return nil, apperrors.Internal("internal server error", err)
	}

	return &model.FavoriteResponse{UserID: fav.UserID, GameID: fav.GameID}, nil
}

// Remove unfavorites a game for a user. Removing an absent pair is not found.
func (s *FavoriteService) Remove(ctx context.Context, userID, gameID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if gameID == "" {
		return apperrors.Validation("gameId is required")
	}

	if err := s.favorites.Remove(ctx, id, gameID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return apperrors.NotFound("favorite not found")
		}
		return apperrors.Internal("internal server error", err)
	}

	return nil
}
