package web

import (
	"net/http"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

// handleHome renders the landing page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Page{}, templates.Home(s.viewer(r)))
}

// handleStatuses renders the status reference page.
func (s *Server) handleStatuses(w http.ResponseWriter, r *http.Request) {
	page := templates.Page{Title: "Statuses", Active: "statuses"}
	s.render(w, r, http.StatusOK, page, templates.Statuses(datatable.LayoutFromRequest(r)))
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string                   `json:"status"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
}

// handleHealth reports liveness and the photo upload queue.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Uploads: s.service.UploadStatus(),
	})
}
