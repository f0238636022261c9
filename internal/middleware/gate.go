package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/nimbuscloud/nimbus-api/internal/crypto"
)

// Cookie names consumed by the gate. The session-token cookie carries the
// signed session; the user cookie carries the display identity.
const (
	SessionCookieName = "session-token"
	UserCookieName    = "user"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller identity extracted from the session cookies.
type Identity struct {
	UserID   int64
	Username string
}

// Outcome is the gate's decision for a request.
type Outcome int

const (
	// OutcomePass lets the request through unchanged.
	OutcomePass Outcome = iota
	// OutcomeRedirectLogin sends an unauthenticated caller to the login page,
	// carrying the original path in a redirect query parameter.
	OutcomeRedirectLogin
	// OutcomeRedirectDashboard sends an authenticated caller away from the
	// login/register pages.
	OutcomeRedirectDashboard
	// OutcomeUnauthorized rejects an unauthenticated protected-API request
	// with a 401 JSON body.
	OutcomeUnauthorized
)

// GateConfig describes the path classes the gate branches on.
type GateConfig struct {
	LoginPath             string
	DashboardPath         string
	ProtectedPagePrefixes []string
	ProtectedAPIPrefixes  []string
	AuthPagePrefixes      []string
}

// DefaultGateConfig returns the route classes for the site: the dashboard is
// login-only, the profile API requires a session, and login/register bounce
// authenticated callers to the dashboard.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		LoginPath:             "/login",
		DashboardPath:         "/dashboard",
		ProtectedPagePrefixes: []string{"/dashboard"},
		ProtectedAPIPrefixes:  []string{"/api/user/profile"},
		AuthPagePrefixes:      []string{"/login", "/register"},
	}
}

// Static asset paths the gate never inspects.
var skipPrefixes = []string{"/_next/static", "/_next/image", "/favicon.ico", "/public/"}

// Skipped reports whether the gate ignores the path entirely.
func Skipped(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide evaluates the four-way branch for a path given whether the caller
// is authenticated. It is a pure function so the branch ordering is testable
// without HTTP machinery.
func (c GateConfig) Decide(path string, authed bool) Outcome {
	if hasAnyPrefix(path, c.ProtectedPagePrefixes) && !authed {
		return OutcomeRedirectLogin
	}
	if hasAnyPrefix(path, c.AuthPagePrefixes) && authed {
		return OutcomeRedirectDashboard
	}
	if strings.HasPrefix(path, "/api/") && hasAnyPrefix(path, c.ProtectedAPIPrefixes) && !authed {
		return OutcomeUnauthorized
	}
	return OutcomePass
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Gate returns middleware that runs the session check and four-way branch
// once per inbound request, before any route handler. Any anomaly while
// reading or verifying the cookies counts as "not authenticated": the gate
// fails closed, never open.
func Gate(cfg GateConfig, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if Skipped(path) {
				next.ServeHTTP(w, r)
				return
			}

			identity := authenticate(r, secret)

			switch cfg.Decide(path, identity != nil) {
			case OutcomeRedirectLogin:
				http.Redirect(w, r, cfg.LoginPath+"?redirect="+url.QueryEscape(path), http.StatusTemporaryRedirect)
			case OutcomeRedirectDashboard:
				http.Redirect(w, r, cfg.DashboardPath, http.StatusTemporaryRedirect)
			case OutcomeUnauthorized:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			default:
				if identity != nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}

// authenticate verifies the session cookies: both must be present and
// non-empty, and the session token must carry a valid signature and expiry.
func authenticate(r *http.Request, secret string) *Identity {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil || sessionCookie.Value == "" {
		return nil
	}

	userCookie, err := r.Cookie(UserCookieName)
	if err != nil || userCookie.Value == "" {
		return nil
	}

	claims, err := crypto.ValidateSessionToken(sessionCookie.Value, secret)
	if err != nil {
		return nil
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}
}

// IdentityFromContext extracts the verified caller identity set by the gate.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}
