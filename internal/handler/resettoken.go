package handler

import (
	"net/http"

	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

// ResetTokenHandler handles HTTP requests for reset-token administration and
// the password reset flow.
type ResetTokenHandler struct {
	service *service.ResetTokenService
}

// NewResetTokenHandler creates a new ResetTokenHandler.
func NewResetTokenHandler(svc *service.ResetTokenService) *ResetTokenHandler {
	return &ResetTokenHandler{service: svc}
}

// HandleInitSchema handles POST /api/init-reset-tokens requests.
func (h *ResetTokenHandler) HandleInitSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.service.EnsureSchema(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleStatus handles GET /api/init-reset-tokens requests.
func (h *ResetTokenHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// HandleSweep handles DELETE /api/init-reset-tokens requests.
func (h *ResetTokenHandler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Sweep(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleRequestReset handles POST /api/password-reset/request requests. The
// answer never reveals whether the account exists.
func (h *ResetTokenHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req model.RequestResetRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	if err := h.service.RequestReset(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleConfirmReset handles POST /api/password-reset/confirm requests.
func (h *ResetTokenHandler) HandleConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmResetRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	if err := h.service.ConfirmReset(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
