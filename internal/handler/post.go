package handler

import (
	"net/http"

	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

// PostHandler handles HTTP requests for the posts smoke test.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleCreate handles POST /api/posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	post, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatePostResponse{Success: true, Post: *post})
}

// HandleList handles GET /api/posts requests.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListRecent(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ListPostsResponse{Success: true, Posts: posts})
}
