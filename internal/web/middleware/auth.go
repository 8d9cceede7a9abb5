package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/swimmeet/internal/auth"
	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/logging"
)

// SessionConfig configures Session.
type SessionConfig struct {
	// Verifier is nil when sign-in is disabled; every request is anonymous.
	Verifier *auth.Verifier

	CookieName    string
	CookieSecure  bool
	DefaultTenant string
}

// Session resolves the signed-in user from the session cookie or a bearer
// token and attaches it, with its tenant, to the request context. Requests
// without a valid token continue anonymously on the default tenant; an
// invalid cookie is cleared.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := core.ContextWithTenant(r.Context(), cfg.DefaultTenant)

			token, fromCookie := sessionToken(r, cfg.CookieName)
			if cfg.Verifier != nil && token != "" {
				user, err := cfg.Verifier.Verify(token)
				switch {
				case err == nil:
					tenant := user.TenantID
					if tenant == "" {
						tenant = cfg.DefaultTenant
					}
					user.TenantID = tenant
					ctx = auth.WithUser(ctx, user)
					ctx = core.ContextWithTenant(ctx, tenant)
					ctx = logging.WithAttrs(ctx, "user_id", user.ID, "tenant_id", tenant)
				case errors.Is(err, auth.ErrInvalidToken):
					slog.WarnContext(ctx, "session: rejected token",
						"path", r.URL.Path,
						"error", err,
					)
					if fromCookie {
						ClearSessionCookie(w, cfg.CookieName, cfg.CookieSecure)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser passes signed-in requests to next and everything else to denied.
func RequireUser(denied http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.UserFromContext(r.Context()); !ok {
				denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request, cookieName string) (token string, fromCookie bool) {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:]), false
	}
	return "", false
}

// SetSessionCookie stores token in an HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, name, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
