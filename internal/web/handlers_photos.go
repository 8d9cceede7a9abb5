package web

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 1 << 20

// PhotoResponse is the JSON body of a successful upload.
type PhotoResponse struct {
	URL string `json:"url"`
}

// handleUploadPhoto stores the "photo" file of a multipart form. htmx gets
// the photo field back with the new URL; JSON clients get PhotoResponse.
func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		s.respondError(w, r, errors.New("photo storage is not configured"), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, core.MaxPhotoSize+multipartMemory)
	url, err := s.uploadPhoto(r)
	name := r.FormValue("name")
	if err != nil {
		statusCode := statusFor(err)
		if statusCode >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "upload photo", "error", err)
		}
		if wantsJSON(r) || !isHTMX(r) {
			s.respondError(w, r, err, statusCode)
			return
		}
		s.renderPhotoField(w, r, statusCode, name, r.FormValue("photo_url"), core.MapError(err).Message)
		return
	}

	if wantsJSON(r) || !isHTMX(r) {
		writeJSON(w, r, http.StatusCreated, PhotoResponse{URL: url})
		return
	}
	s.renderPhotoField(w, r, http.StatusOK, name, url, "")
}

func (s *Server) uploadPhoto(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", fmt.Errorf("%w: over %d bytes", core.ErrPhotoTooLarge, tooBig.Limit)
		}
		return "", fmt.Errorf("parse upload: %w", err)
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", core.ErrNoPhoto
		}
		return "", fmt.Errorf("read upload: %w", err)
	}
	defer func(f multipart.File) {
		if err := f.Close(); err != nil {
			slog.WarnContext(r.Context(), "close upload", "error", err)
		}
	}(file)

	return s.service.UploadPhoto(r.Context(), tenant(r), core.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
}

// handleRemovePhoto deletes the photo named by the url query value and
// returns the emptied field. A photo that is already gone still empties it.
func (s *Server) handleRemovePhoto(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		s.respondError(w, r, errors.New("photo storage is not configured"), http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	photoURL, name := q.Get("url"), q.Get("name")

	err := s.service.RemovePhoto(r.Context(), tenant(r), photoURL)
	switch {
	case err == nil, errors.Is(err, core.ErrPhotoNotFound):
		if wantsJSON(r) || !isHTMX(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.renderPhotoField(w, r, http.StatusOK, name, "", "")
	default:
		if wantsJSON(r) || !isHTMX(r) {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		slog.ErrorContext(r.Context(), "remove photo", "error", err)
		s.renderPhotoField(w, r, http.StatusInternalServerError, name, photoURL, core.MapError(err).Message)
	}
}

func (s *Server) renderPhotoField(w http.ResponseWriter, r *http.Request, statusCode int, name, url, errMsg string) {
	if err := writeHTML(w, r, statusCode, templates.PhotoField(name, url, errMsg)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}
