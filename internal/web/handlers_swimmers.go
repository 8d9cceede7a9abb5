package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

var swimmersPage = templates.Page{Title: "Swimmers", Active: "swimmers"}

// filterFromQuery reads the roster toolbar values.
func filterFromQuery(q url.Values) core.SwimmerFilter {
	return core.SwimmerFilter{
		Search: q.Get("q"),
		Team:   q.Get("team"),
		Gender: q.Get("gender"),
	}
}

// handleSwimmers renders the roster. The page itself carries the toolbar and
// a loading placeholder; the placeholder, the toolbar and the retry button
// request the roster partial, which is the only response that loads
// swimmers.
func (s *Server) handleSwimmers(w http.ResponseWriter, r *http.Request) {
	v := s.viewer(r)
	data := templates.SwimmersData{
		Viewer: v,
		Filter: filterFromQuery(r.URL.Query()),
		Layout: datatable.LayoutFromRequest(r),
		Now:    s.service.Now(),
	}

	if v.AuthEnabled && !v.SignedIn {
		if partialFor(r, templates.RosterID) {
			s.respondError(w, r, ErrSignInRequired, http.StatusUnauthorized)
			return
		}
		s.render(w, r, http.StatusOK, swimmersPage, templates.SwimmersPage(data))
		return
	}

	if partialFor(r, templates.RosterID) {
		s.renderRoster(w, r, data)
		return
	}

	teams, err := s.service.Teams(r.Context(), tenant(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "load teams", "error", err)
	}
	data.Teams = teams
	data.Loading = true
	s.render(w, r, http.StatusOK, swimmersPage, templates.SwimmersPage(data))
}

// renderRoster loads the roster and writes the partial. Load failures are
// shown in place by the error presenter with a 200 so htmx swaps them.
func (s *Server) renderRoster(w http.ResponseWriter, r *http.Request, data templates.SwimmersData) {
	roster, err := s.service.Roster(r.Context(), tenant(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "load roster", "error", err)
		data.Err = core.MapError(err).Message
	} else {
		data.All = roster.Swimmers
		data.Teams = roster.Teams
		data.Visible = core.FilterSwimmers(roster.Swimmers, data.Filter)
	}

	if err := writeHTML(w, r, http.StatusOK, templates.Roster(data)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// handleNewSwimmer renders the empty add form.
func (s *Server) handleNewSwimmer(w http.ResponseWriter, r *http.Request) {
	teams, err := s.service.Teams(r.Context(), tenant(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, swimmersPage, templates.SwimmerForm(templates.FormData{
		Teams:        teams,
		PhotoEnabled: s.media != nil,
	}))
}

// handleEditSwimmer renders the edit form filled from the stored swimmer.
func (s *Server) handleEditSwimmer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sw, err := s.service.Swimmer(r.Context(), tenant(r), id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	teams, err := s.service.Teams(r.Context(), tenant(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, swimmersPage, templates.SwimmerForm(templates.FormData{
		ID:           sw.ID,
		Input:        core.InputFromSwimmer(sw),
		Teams:        teams,
		PhotoEnabled: s.media != nil,
	}))
}

// handleSaveSwimmer creates (POST /swimmers) or updates (POST /swimmers/{id})
// a swimmer. Invalid input re-renders the form with 422; success returns the
// roster with a notice.
func (s *Server) handleSaveSwimmer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("parse form: %w", err), http.StatusBadRequest)
		return
	}
	in := inputFromForm(r.PostForm)

	sw, err := s.service.SaveSwimmer(r.Context(), tenant(r), id, in)
	if err != nil {
		if errors.Is(err, core.ErrSwimmerNotFound) {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}

		form := templates.FormData{ID: id, Input: in.Normalize(), PhotoEnabled: s.media != nil}
		statusCode := http.StatusUnprocessableEntity
		var verrs core.ValidationErrors
		if errors.As(err, &verrs) {
			form.Errors = verrs
		} else {
			slog.ErrorContext(r.Context(), "save swimmer", "swimmer_id", id, "error", err)
			form.Message = core.FormatUserError(err)
			if !core.IsUserFacing(err) {
				statusCode = http.StatusInternalServerError
			}
		}
		teams, terr := s.service.Teams(r.Context(), tenant(r))
		if terr != nil {
			slog.ErrorContext(r.Context(), "load teams", "error", terr)
		}
		form.Teams = teams
		s.render(w, r, statusCode, swimmersPage, templates.SwimmerForm(form))
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/swimmers", http.StatusSeeOther)
		return
	}

	verb := "updated"
	if id == "" {
		verb = "added"
	}
	teams, err := s.service.Teams(r.Context(), tenant(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "load teams", "error", err)
	}
	w.Header().Set("HX-Push-Url", "/swimmers")
	s.render(w, r, http.StatusOK, swimmersPage, templates.SwimmersPage(templates.SwimmersData{
		Viewer:  s.viewer(r),
		Teams:   teams,
		Layout:  datatable.LayoutFromRequest(r),
		Now:     s.service.Now(),
		Loading: true,
		Notice:  fmt.Sprintf("%s %s", sw.Name, verb),
	}))
}

func inputFromForm(f url.Values) core.SwimmerInput {
	return core.SwimmerInput{
		Name:                  f.Get("name"),
		GenderCode:            f.Get("gender_code"),
		BirthDate:             f.Get("birth_date"),
		TeamID:                f.Get("team_id"),
		PhotoURL:              f.Get("photo_url"),
		ContactEmail:          f.Get("contact_email"),
		ContactPhone:          f.Get("contact_phone"),
		EmergencyContactName:  f.Get("emergency_contact_name"),
		EmergencyContactPhone: f.Get("emergency_contact_phone"),
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verrs core.ValidationErrors
	switch {
	case errors.Is(err, core.ErrSwimmerNotFound), errors.Is(err, core.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.As(err, &verrs),
		errors.Is(err, core.ErrNotImage),
		errors.Is(err, core.ErrPhotoTooLarge),
		errors.Is(err, core.ErrNoPhoto):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
