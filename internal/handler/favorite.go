package handler

import (
	"net/http"

	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

// FavoriteHandler handles HTTP requests for favorite games.
type FavoriteHandler struct {
	service *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: svc}
}

// HandleList handles GET /api/favorites?userId= requests.
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.service.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ListFavoritesResponse{Success: true, Favorites: favorites})
}

// HandleAdd handles POST /api/favorites requests.
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req model.AddFavoriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	fav, err := h.service.Add(r.Context(), req.UserID, req.GameID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.AddFavoriteResponse{Success: true, Favorite: *fav})
}

// HandleRemove handles DELETE /api/favorites?userId=&gameId= requests.
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if err := h.service.Remove(r.Context(), q.Get("userId"), q.Get("gameId")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
