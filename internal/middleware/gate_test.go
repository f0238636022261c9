package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nimbuscloud/nimbus-api/internal/crypto"
)

const testSecret = "test-secret"

func TestDecide(t *testing.T) {
	cfg := DefaultGateConfig()

	tests := []struct {
		name   string
		path   string
		authed bool
		want   Outcome
	}{
		{"protected page unauthenticated", "/dashboard", false, OutcomeRedirectLogin},
		{"protected subpage unauthenticated", "/dashboard/settings", false, OutcomeRedirectLogin},
		{"protected page authenticated", "/dashboard", true, OutcomePass},
		{"auth page authenticated", "/login", true, OutcomeRedirectDashboard},
		{"register page authenticated", "/register", true, OutcomeRedirectDashboard},
		{"auth page unauthenticated", "/login", false, OutcomePass},
		{"protected api unauthenticated", "/api/user/profile", false, OutcomeUnauthorized},
		{"protected api authenticated", "/api/user/profile", true, OutcomePass},
		{"open api unauthenticated", "/api/users/search", false, OutcomePass},
		{"marketing page unauthenticated", "/pricing", false, OutcomePass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Decide(tt.path, tt.authed); got != tt.want {
				t.Errorf("Decide(%q, %v) = %v, want %v", tt.path, tt.authed, got, tt.want)
			}
		})
	}
}

func TestSkipped(t *testing.T) {
	for _, path := range []string{"/_next/static/chunk.js", "/_next/image", "/favicon.ico", "/public/logo.svg"} {
		if !Skipped(path) {
			t.Errorf("Skipped(%q) = false, want true", path)
		}
	}
	if Skipped("/dashboard") {
		t.Error("Skipped(/dashboard) = true, want false")
	}
}

func newGateServer(t *testing.T, next http.Handler) http.Handler {
	t.Helper()
	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	return Gate(DefaultGateConfig(), testSecret)(next)
}

func sessionCookies(t *testing.T, userID int64, username string) []*http.Cookie {
	t.Helper()
	token, err := crypto.GenerateSessionToken(userID, username, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken() unexpected error: %v", err)
	}
	return []*http.Cookie{
		{Name: SessionCookieName, Value: token},
		{Name: UserCookieName, Value: username},
	}
}

func TestGateRedirectsToLoginWithOriginalPath(t *testing.T) {
	h := newGateServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	location := rec.Header().Get("Location")
	if location != "/login?redirect=%2Fdashboard%2Fsettings" {
		t.Errorf("Location = %q, want %q", location, "/login?redirect=%2Fdashboard%2Fsettings")
	}
}

func TestGateRedirectsAuthenticatedToDashboard(t *testing.T) {
	h := newGateServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range sessionCookies(t, 42, "mario.rossi") {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	if location := rec.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Location = %q, want %q", location, "/dashboard")
	}
}

func TestGateRejectsProtectedAPIWithJSON(t *testing.T) {
	h := newGateServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %q, want %q", body["error"], "Unauthorized")
	}
}

// A session-token cookie without the user cookie is not authenticated.
func TestGateRequiresBothCookies(t *testing.T) {
	h := newGateServer(t, nil)

	token, err := crypto.GenerateSessionToken(42, "mario.rossi", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// An expired or tampered token fails closed.
func TestGateRejectsExpiredToken(t *testing.T) {
	h := newGateServer(t, nil)

	token, err := crypto.GenerateSessionToken(42, "mario.rossi", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	req.AddCookie(&http.Cookie{Name: UserCookieName, Value: "mario.rossi"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
}

func TestGateInjectsIdentity(t *testing.T) {
	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		gotOK = ok
		if ok {
			gotID = identity.UserID
		}
		w.WriteHeader(http.StatusOK)
	})
	h := newGateServer(t, next)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	for _, c := range sessionCookies(t, 42, "mario.rossi") {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !gotOK {
		t.Fatal("expected identity in request context")
	}
	if gotID != 42 {
		t.Errorf("identity UserID = %d, want 42", gotID)
	}
}

func TestGatePassesSkippedPaths(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	h := newGateServer(t, next)

	req := httptest.NewRequest(http.MethodGet, "/_next/static/app.js", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Error("expected skipped path to reach the next handler")
	}
}
