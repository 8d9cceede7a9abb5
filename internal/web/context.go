package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/auth"
	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

// viewer describes the requester for the page chrome and edit checks.
func (s *Server) viewer(r *http.Request) templates.Viewer {
	u, ok := auth.UserFromContext(r.Context())
	return templates.Viewer{
		SignedIn:    ok,
		Name:        u.DisplayName(),
		AuthEnabled: s.verifier != nil,
	}
}

// tenant returns the tenant Session resolved for the request.
func tenant(r *http.Request) string {
	if t := core.TenantFromContext(r.Context()); t != "" {
		return t
	}
	return core.DefaultTenantID
}

// partialFor reports whether an htmx request asked for the element with id
// target. History restores always get the full page.
func partialFor(r *http.Request, target string) bool {
	return isHTMX(r) &&
		r.Header.Get("HX-History-Restore-Request") != "true" &&
		r.Header.Get("HX-Target") == target
}

// render writes body alone for htmx requests that target #content and
// wrapped in the layout otherwise.
func (s *Server) render(w http.ResponseWriter, r *http.Request, statusCode int, page templates.Page, body templ.Component) {
	c := body
	if !partialFor(r, templates.ContentID) {
		page.Viewer = s.viewer(r)
		c = templates.Layout(page, body)
	}
	if err := writeHTML(w, r, statusCode, c); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}
