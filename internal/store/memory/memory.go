// Package memory is an in-process core.Store used for local development,
// demos and tests. It can be seeded from a YAML fixture file.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

// Store keeps swimmers and teams in maps guarded by a mutex.
type Store struct {
	mu       sync.RWMutex
	swimmers map[string]core.Swimmer
	teams    map[string]core.Team
	now      func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		swimmers: make(map[string]core.Swimmer),
		teams:    make(map[string]core.Team),
		now:      time.Now,
	}
}

var _ core.Store = (*Store)(nil)

// ListSwimmers returns the tenant's active swimmers ordered by name, with
// their team joined.
func (s *Store) ListSwimmers(ctx context.Context, tenantID string) ([]core.Swimmer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Swimmer, 0, len(s.swimmers))
	for _, sw := range s.swimmers {
		if sw.TenantID == tenantID && sw.IsActive {
			out = append(out, s.withTeam(sw))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byName(out[i].Name, out[i].ID, out[j].Name, out[j].ID)
	})
	return out, nil
}

// GetSwimmer returns one swimmer of the tenant.
func (s *Store) GetSwimmer(ctx context.Context, tenantID, id string) (core.Swimmer, error) {
	if err := ctx.Err(); err != nil {
		return core.Swimmer{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sw, ok := s.swimmers[id]
	if !ok || sw.TenantID != tenantID {
		return core.Swimmer{}, core.ErrSwimmerNotFound
	}
	return s.withTeam(sw), nil
}

// UpsertSwimmer creates a swimmer when id is empty and updates it otherwise.
func (s *Store) UpsertSwimmer(ctx context.Context, tenantID, id string, in core.SwimmerInput) (core.Swimmer, error) {
	if err := ctx.Err(); err != nil {
		return core.Swimmer{}, err
	}
	birth, err := in.BirthDateValue()
	if err != nil {
		return core.Swimmer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.TeamID != "" {
		if t, ok := s.teams[in.TeamID]; !ok || t.TenantID != tenantID {
			return core.Swimmer{}, fmt.Errorf("%w: %s", core.ErrTeamNotFound, in.TeamID)
		}
	}

	now := s.now()
	var sw core.Swimmer
	if id == "" {
		sw = core.Swimmer{ID: uuid.NewString(), TenantID: tenantID, IsActive: true, CreatedAt: now}
	} else {
		existing, ok := s.swimmers[id]
		if !ok || existing.TenantID != tenantID {
			return core.Swimmer{}, core.ErrSwimmerNotFound
		}
		sw = existing
	}

	sw.Name = in.Name
	sw.GenderCode = core.GenderCode(in.GenderCode)
	sw.BirthDate = birth
	sw.TeamID = in.TeamID
	sw.PhotoURL = in.PhotoURL
	sw.ContactEmail = in.ContactEmail
	sw.ContactPhone = in.ContactPhone
	sw.EmergencyContactName = in.EmergencyContactName
	sw.EmergencyContactPhone = in.EmergencyContactPhone
	sw.UpdatedAt = now

	s.swimmers[sw.ID] = sw
	return s.withTeam(sw), nil
}

// ListTeams returns the tenant's active teams ordered by name.
func (s *Store) ListTeams(ctx context.Context, tenantID string) ([]core.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Team, 0, len(s.teams))
	for _, t := range s.teams {
		if t.TenantID == tenantID && t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byName(out[i].Name, out[i].ID, out[j].Name, out[j].ID)
	})
	return out, nil
}

// byName orders case-insensitively by name, then by id.
func byName(a, aID, b, bID string) bool {
	if la, lb := strings.ToLower(a), strings.ToLower(b); la != lb {
		return la < lb
	}
	return aID < bID
}

// PutTeam inserts or replaces a team.
func (s *Store) PutTeam(t core.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
}

// PutSwimmer inserts or replaces a swimmer as-is.
func (s *Store) PutSwimmer(sw core.Swimmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swimmers[sw.ID] = sw
}

// withTeam must be called with the lock held.
func (s *Store) withTeam(sw core.Swimmer) core.Swimmer {
	sw.Team = nil
	if t, ok := s.teams[sw.TeamID]; ok && sw.TeamID != "" {
		sw.Team = &core.TeamRef{ID: t.ID, Name: t.Name}
	}
	return sw
}
