package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultTenantID is the tenant used when no signed-in user supplies one.
const DefaultTenantID = "00000000-0000-0000-0000-000000000001"

// GenderCode is a swimmer's competition gender category.
type GenderCode string

const (
	GenderMale   GenderCode = "M"
	GenderFemale GenderCode = "F"
	GenderMixed  GenderCode = "X"
)

var genderLabels = map[GenderCode]string{
	GenderMale:   "male",
	GenderFemale: "female",
	GenderMixed:  "mixed",
}

// Label returns the display label, or the raw code if it is unknown.
func (g GenderCode) Label() string {
	if l, ok := genderLabels[g]; ok {
		return l
	}
	return string(g)
}

// SwimmerGenders are the codes a swimmer record may carry. Mixed only
// applies to relay events.
func SwimmerGenders() []GenderCode {
	return []GenderCode{GenderMale, GenderFemale}
}

// PoolCourse is the pool length a competition is swum in.
type PoolCourse string

const (
	PoolLCM PoolCourse = "LCM"
	PoolSCM PoolCourse = "SCM"
	PoolSCY PoolCourse = "SCY"
)

var poolCourseLabels = map[PoolCourse]string{
	PoolLCM: "long course (50m)",
	PoolSCM: "short course (25m)",
	PoolSCY: "short course (25yd)",
}

// PoolCourses lists every pool course code.
func PoolCourses() []PoolCourse {
	return []PoolCourse{PoolLCM, PoolSCM, PoolSCY}
}

// ErrUnknownPoolCourse is returned for a code outside PoolCourses.
var ErrUnknownPoolCourse = errors.New("unknown pool course")

// Label returns the display label of the course.
func (p PoolCourse) Label() (string, error) {
	l, ok := poolCourseLabels[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPoolCourse, string(p))
	}
	return l, nil
}

// Team is a club that swimmers belong to.
type Team struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// TeamRef is the team summary joined onto a swimmer.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Swimmer is one athlete on a tenant's roster.
type Swimmer struct {
	ID                    string     `json:"id"`
	TenantID              string     `json:"tenant_id"`
	TeamID                string     `json:"team_id,omitempty"`
	Name                  string     `json:"name"`
	GenderCode            GenderCode `json:"gender_code"`
	BirthDate             time.Time  `json:"birth_date"`
	PhotoURL              string     `json:"photo_url,omitempty"`
	ContactEmail          string     `json:"contact_email,omitempty"`
	ContactPhone          string     `json:"contact_phone,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	IsActive              bool       `json:"is_active"`
	Team                  *TeamRef   `json:"team,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TeamName returns the joined team name or "".
func (s Swimmer) TeamName() string {
	if s.Team == nil {
		return ""
	}
	return s.Team.Name
}

// Store is the persistence collaborator for roster data. Lists contain
// active records only, ordered by name.
type Store interface {
	ListSwimmers(ctx context.Context, tenantID string) ([]Swimmer, error)
	GetSwimmer(ctx context.Context, tenantID, id string) (Swimmer, error)
	// UpsertSwimmer inserts when id is empty and updates otherwise. An
	// update of a missing swimmer returns ErrSwimmerNotFound.
	UpsertSwimmer(ctx context.Context, tenantID, id string, in SwimmerInput) (Swimmer, error)
	ListTeams(ctx context.Context, tenantID string) ([]Team, error)
}

// PhotoStore is the object-storage collaborator for swimmer photos.
type PhotoStore interface {
	// Put stores r under key and returns the public URL of the object.
	Put(ctx context.Context, key, contentType string, size int64, r io.Reader) (string, error)
	// Delete removes the object behind a URL previously returned by Put.
	Delete(ctx context.Context, url string) error
	// Key returns the object key behind url, or false when url is not one
	// of the store's URLs.
	Key(url string) (string, bool)
}

var (
	// ErrSwimmerNotFound is returned when a swimmer id does not exist for
	// the tenant.
	ErrSwimmerNotFound = errors.New("swimmer not found")

	// ErrTeamNotFound is returned by a Store when a swimmer references a
	// team that does not exist for the tenant.
	ErrTeamNotFound = errors.New("team not found")

	// ErrNotImage is returned for photo uploads that are not images.
	ErrNotImage = errors.New("photo is not an image")

	// ErrPhotoTooLarge is returned for photos above MaxPhotoSize.
	ErrPhotoTooLarge = errors.New("photo too large")

	// ErrPhotoNotFound is returned when removing a photo that does not exist.
	ErrPhotoNotFound = errors.New("photo not found")
)

// MaxPhotoSize is the largest accepted photo upload.
const MaxPhotoSize = 5 << 20
