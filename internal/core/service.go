package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrNoPhoto is returned when an upload carries no file.
var ErrNoPhoto = errors.New("no photo provided")

// Service provides the roster operations used by the web handlers and CLI.
type Service struct {
	store   Store
	photos  PhotoStore
	limiter *UploadLimiter
	now     func() time.Time
}

// NewService wires a Service. photos may be nil when photo uploads are
// disabled.
func NewService(store Store, photos PhotoStore, limiter *UploadLimiter) *Service {
	if limiter == nil {
		limiter = NewUploadLimiter(DefaultMaxConcurrentUploads, DefaultMaxWaitTime)
	}
	return &Service{
		store:   store,
		photos:  photos,
		limiter: limiter,
		now:     time.Now,
	}
}

// Now returns the service clock. Ages and birth date checks use it.
func (s *Service) Now() time.Time {
	return s.now()
}

// Roster is a tenant's swimmers together with the teams they can join.
type Roster struct {
	Swimmers []Swimmer
	Teams    []Team
}

// Roster loads swimmers and teams concurrently.
func (s *Service) Roster(ctx context.Context, tenantID string) (Roster, error) {
	var r Roster
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		swimmers, err := s.store.ListSwimmers(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("list swimmers: %w", err)
		}
		r.Swimmers = swimmers
		return nil
	})
	g.Go(func() error {
		teams, err := s.store.ListTeams(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		r.Teams = teams
		return nil
	})

	if err := g.Wait(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Teams lists a tenant's active teams.
func (s *Service) Teams(ctx context.Context, tenantID string) ([]Team, error) {
	teams, err := s.store.ListTeams(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// Swimmer loads one swimmer.
func (s *Service) Swimmer(ctx context.Context, tenantID, id string) (Swimmer, error) {
	sw, err := s.store.GetSwimmer(ctx, tenantID, id)
	if err != nil {
		return Swimmer{}, fmt.Errorf("get swimmer %s: %w", id, err)
	}
	return sw, nil
}

// SaveSwimmer validates in and creates (empty id) or updates a swimmer.
// Validation failures are returned as ValidationErrors.
func (s *Service) SaveSwimmer(ctx context.Context, tenantID, id string, in SwimmerInput) (Swimmer, error) {
	in = in.Normalize()
	if err := in.Validate(s.now()); err != nil {
		return Swimmer{}, err
	}

	sw, err := s.store.UpsertSwimmer(ctx, tenantID, id, in)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return Swimmer{}, ValidationErrors{{Field: "team_id", Value: in.TeamID, Message: "select a team from the list"}}
		}
		if id == "" {
			return Swimmer{}, fmt.Errorf("create swimmer: %w", err)
		}
		return Swimmer{}, fmt.Errorf("update swimmer %s: %w", id, err)
	}

	slog.InfoContext(ctx, "swimmer saved",
		"tenant_id", tenantID,
		"swimmer_id", sw.ID,
		"created", id == "",
	)
	return sw, nil
}

// PhotoUpload is one photo file received from a client.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadPhoto stores a swimmer photo under the tenant prefix and returns
// its public URL.
func (s *Service) UploadPhoto(ctx context.Context, tenantID string, p PhotoUpload) (string, error) {
	if s.photos == nil {
		return "", errors.New("photo storage is not configured")
	}
	if p.Body == nil || p.Size == 0 {
		return "", ErrNoPhoto
	}
	if !strings.HasPrefix(p.ContentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, p.ContentType)
	}
	if p.Size > MaxPhotoSize {
		return "", fmt.Errorf("%w: %d bytes", ErrPhotoTooLarge, p.Size)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer s.limiter.Release()

	key := PhotoKey(tenantID, p.Filename, p.ContentType, s.now())
	url, err := s.photos.Put(ctx, key, p.ContentType, p.Size, p.Body)
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	slog.InfoContext(ctx, "photo uploaded",
		"tenant_id", tenantID,
		"key", key,
		"size", p.Size,
	)
	return url, nil
}

// RemovePhoto deletes a photo previously uploaded for tenantID. URLs whose
// key does not start with the tenant prefix are reported as not found.
func (s *Service) RemovePhoto(ctx context.Context, tenantID, url string) error {
	if s.photos == nil {
		return errors.New("photo storage is not configured")
	}
	key, ok := s.photos.Key(url)
	if !ok || tenantID == "" || path.Clean(key) != key || !strings.HasPrefix(key, tenantID+"/") {
		return fmt.Errorf("%w: %s", ErrPhotoNotFound, url)
	}
	if err := s.photos.Delete(ctx, url); err != nil {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}

// PhotoKey builds the object key "<tenant>/<unix-millis>-<random><ext>".
// The extension comes from the file name, or from the content type when
// the name has none.
func PhotoKey(tenantID, filename, contentType string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d-%s%s", tenantID, now.UnixMilli(), random, ext)
}

// UploadStatus reports the photo upload limiter state.
func (s *Service) UploadStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight photo uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
