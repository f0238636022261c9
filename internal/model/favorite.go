package model

import "time"

// Favorite represents a (user, game) association row.
type Favorite struct {
	ID        int64
	UserID    int64
	GameID    string
	CreatedAt time.Time
}

// AddFavoriteRequest represents a request to favorite a game.
type AddFavoriteRequest struct {
	UserID string `json:"userId"`
	GameID string `json:"gameId"`
}

// FavoriteResponse represents a favorite in API responses.
type FavoriteResponse struct {
	UserID int64  `json:"userId"`
	GameID string `json:"gameId"`
}

// ListFavoritesResponse represents a user's favorite game ids.
type ListFavoritesResponse struct {
	Success   bool     `json:"success"`
	Favorites []string `json:"favorites"`
}

// AddFavoriteResponse represents a successfully added favorite.
type AddFavoriteResponse struct {
	Success  bool             `json:"success"`
	Favorite FavoriteResponse `json:"favorite"`
}
