package handler

import (
	"net/http"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

// AccountHandler handles HTTP requests for account lifecycle and user search.
type AccountHandler struct {
	service *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// HandleCheckDeletable handles POST /api/account/delete requests: the
// pre-deletion check reporting what a deletion would remove.
func (h *AccountHandler) HandleCheckDeletable(w http.ResponseWriter, r *http.Request) {
	var req model.CheckDeletableRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	resp, err := h.service.CheckDeletable(r.Context(), req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteAccount handles DELETE /api/account/delete requests.
func (h *AccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteAccountRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	deleted, err := h.service.Delete(r.Context(), req.UserID, req.ConfirmPassword)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteAccountResponse{Success: true, DeletedUser: *deleted})
}

// HandleSeedTestAccounts handles POST /api/test-users requests.
func (h *AccountHandler) HandleSeedTestAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SeedTestAccounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleListTestAccounts handles GET /api/test-users requests.
func (h *AccountHandler) HandleListTestAccounts(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListTestAccounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ListUsersResponse{Success: true, Users: users})
}

// HandleSearchUsers handles GET /api/users/search requests: exact lookup by
// email or username. A missing user is exists:false, never a 404.
func (h *AccountHandler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	username := r.URL.Query().Get("username")

	if email == "" && username == "" {
		respondError(w, apperrors.Validation("email or username query parameter is required"))
		return
	}

	var (
		user *model.UserResponse
		err  error
	)
	if email != "" {
		user, err = h.service.SearchByEmail(r.Context(), email)
	} else {
		user, err = h.service.SearchByUsername(r.Context(), username)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SearchUserResponse{
		Success: true,
		Exists:  user != nil,
		User:    user,
	})
}

// HandleSearchUsersBatch handles POST /api/users/search requests: batch
// lookup by email list. Missing entries are omitted from the result.
func (h *AccountHandler) HandleSearchUsersBatch(w http.ResponseWriter, r *http.Request) {
	var req model.BatchSearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	users, err := h.service.SearchByEmails(r.Context(), req.Emails)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BatchSearchResponse{
		Success: true,
		Found:   len(users),
		Users:   users,
	})
}
