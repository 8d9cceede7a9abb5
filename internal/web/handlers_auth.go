package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/swimmeet/internal/auth"
	"github.com/JonMunkholm/swimmeet/internal/web/middleware"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

// oauthProvider is the identity provider offered on the sign-in button.
const oauthProvider = "google"

var errAuthDisabled = errors.New("sign-in is not configured")

// handleSignIn redirects to the identity provider. Without one configured
// it goes home.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, auth.AuthorizeURL(s.cfg.Auth.URL, oauthProvider, s.cfg.Auth.RedirectURL), http.StatusFound)
}

// handleAuthCallback renders the page that turns the token in the URL
// fragment into a session.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Page{Title: "Signing in"}, templates.AuthCallback())
}

// handleCreateSession verifies the posted access_token and stores it in the
// session cookie.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil {
		s.respondError(w, r, errAuthDisabled, http.StatusNotFound)
		return
	}

	token := r.PostFormValue("access_token")
	user, err := s.verifier.Verify(token)
	if err != nil {
		s.respondError(w, r, err, http.StatusUnauthorized)
		return
	}

	middleware.SetSessionCookie(w, s.cfg.Auth.CookieName, token, s.cfg.Auth.CookieSecure)
	slog.InfoContext(r.Context(), "signed in", "user_id", user.ID, "tenant_id", user.TenantID)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusNoContent)
}

// handleSignOut clears the session cookie.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, s.cfg.Auth.CookieName, s.cfg.Auth.CookieSecure)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
