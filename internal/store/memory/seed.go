package memory

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

// Fixture is the YAML seed format:
//
//	tenant_id: 00000000-0000-0000-0000-000000000001
//	teams:
//	  - id: sharks
//	    name: Harbour Sharks
//	swimmers:
//	  - name: Alice Chen
//	    gender: F
//	    birth_date: 2010-06-15
//	    team: sharks
type Fixture struct {
	TenantID string           `yaml:"tenant_id"`
	Teams    []FixtureTeam    `yaml:"teams"`
	Swimmers []FixtureSwimmer `yaml:"swimmers"`
}

// FixtureTeam is one seeded team. ID is a fixture-local handle.
type FixtureTeam struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Inactive bool   `yaml:"inactive"`
}

// FixtureSwimmer is one seeded swimmer. Team refers to a FixtureTeam id.
type FixtureSwimmer struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Gender    string `yaml:"gender"`
	BirthDate string `yaml:"birth_date"`
	Team      string `yaml:"team"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	PhotoURL  string `yaml:"photo_url"`
	Inactive  bool   `yaml:"inactive"`
}

// ParseFixture decodes a fixture. Unknown fields are rejected.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return Fixture{}, nil
		}
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if f.TenantID == "" {
		f.TenantID = core.DefaultTenantID
	}
	return f, nil
}

// LoadFixtureFile reads and parses a fixture file.
func LoadFixtureFile(path string) (Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()
	return ParseFixture(file)
}

// Seed loads a fixture into the store. Swimmer input is validated the same
// way the form validates it, so a fixture cannot hold records the UI would
// reject. It returns the number of swimmers and teams written.
func (s *Store) Seed(f Fixture) (swimmers, teams int, err error) {
	tenant := f.TenantID
	if tenant == "" {
		tenant = core.DefaultTenantID
	}

	teamIDs := make(map[string]string, len(f.Teams))
	for _, ft := range f.Teams {
		id := ft.ID
		if id == "" {
			id = uuid.NewString()
		}
		teamIDs[ft.ID] = id
		s.PutTeam(core.Team{ID: id, TenantID: tenant, Name: ft.Name, IsActive: !ft.Inactive})
		teams++
	}

	now := s.now()
	for i, fs := range f.Swimmers {
		in := core.SwimmerInput{
			Name:         fs.Name,
			GenderCode:   fs.Gender,
			BirthDate:    fs.BirthDate,
			ContactEmail: fs.Email,
			ContactPhone: fs.Phone,
			PhotoURL:     fs.PhotoURL,
		}.Normalize()
		if err := in.Validate(now); err != nil {
			return swimmers, teams, fmt.Errorf("swimmer %d (%s): %w", i, fs.Name, err)
		}

		var teamID string
		if fs.Team != "" {
			id, ok := teamIDs[fs.Team]
			if !ok {
				return swimmers, teams, fmt.Errorf("swimmer %d (%s): team not found: %s", i, fs.Name, fs.Team)
			}
			teamID = id
		}

		birth, _ := in.BirthDateValue()
		id := fs.ID
		if id == "" {
			id = uuid.NewString()
		}
		s.PutSwimmer(core.Swimmer{
			ID:           id,
			TenantID:     tenant,
			TeamID:       teamID,
			Name:         in.Name,
			GenderCode:   core.GenderCode(in.GenderCode),
			BirthDate:    birth,
			PhotoURL:     in.PhotoURL,
			ContactEmail: in.ContactEmail,
			ContactPhone: in.ContactPhone,
			IsActive:     !fs.Inactive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		swimmers++
	}
	return swimmers, teams, nil
}

// DemoFixture is the roster loaded when no seed file is configured.
func DemoFixture() Fixture {
	year := time.Now().Year()
	bd := func(age int, md string) string { return fmt.Sprintf("%d-%s", year-age, md) }
	return Fixture{
		TenantID: core.DefaultTenantID,
		Teams: []FixtureTeam{
			{ID: "harbour-sharks", Name: "Harbour Sharks"},
			{ID: "river-otters", Name: "River Otters"},
		},
		Swimmers: []FixtureSwimmer{
			{Name: "Alice Chen", Gender: "F", BirthDate: bd(14, "03-12"), Team: "harbour-sharks"},
			{Name: "Bob Lin", Gender: "M", BirthDate: bd(12, "07-01")},
			{Name: "Carol Wu", Gender: "F", BirthDate: bd(16, "11-23"), Team: "river-otters"},
			{Name: "Daniel Huang", Gender: "M", BirthDate: bd(13, "01-30"), Team: "harbour-sharks"},
		},
	}
}
