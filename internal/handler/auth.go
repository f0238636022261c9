package handler

import (
	"net/http"
	"time"

	"github.com/nimbuscloud/nimbus-api/internal/middleware"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/service"
)

// CookieConfig controls how the session cookies are issued.
type CookieConfig struct {
	Secure bool
	Domain string
	Expiry time.Duration
}

// AuthHandler handles HTTP requests for registration, login and profile.
type AuthHandler struct {
	service *service.AuthService
	cookies CookieConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	user, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookies(w, token, user.Username)
	writeJSON(w, http.StatusCreated, model.AuthResponse{Success: true, User: user})
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookies(w, token, user.Username)
	writeJSON(w, http.StatusOK, model.AuthResponse{Success: true, User: user})
}

// HandleLogout handles POST /api/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleProfile handles GET /api/user/profile requests. The gate has already
// verified the session; the identity check here is belt and suspenders.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Unauthorized"})
		return
	}

	user, err := h.service.Profile(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// setSessionCookies issues the two session cookies: the signed token
// (HttpOnly) and the display identity readable by page scripts.
func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, token, username string) {
	expires := time.Now().Add(h.cookies.Expiry)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookies.Secure,
		Expires:  expires,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.UserCookieName,
		Value:    username,
		Path:     "/",
		Domain:   h.cookies.Domain,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookies.Secure,
		Expires:  expires,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.SessionCookieName, middleware.UserCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   h.cookies.Domain,
			HttpOnly: name == middleware.SessionCookieName,
			SameSite: http.SameSiteLaxMode,
			Secure:   h.cookies.Secure,
			MaxAge:   -1,
		})
	}
}
