package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

const fixtureYAML = `
tenant_id: tenant-a
teams:
  - id: sharks
    name: Harbour Sharks
  - id: old
    name: Old Club
    inactive: true
swimmers:
  - id: s2
    name: bob lin
    gender: M
    birth_date: "2012-07-01"
  - id: s1
    name: Alice Chen
    gender: F
    birth_date: "2010-06-15"
    team: sharks
  - id: s3
    name: Gone Swimmer
    gender: F
    birth_date: "2009-01-01"
    inactive: true
`

func seeded(t *testing.T) *Store {
	t.Helper()
	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	s := New()
	swimmers, teams, err := s.Seed(f)
	require.NoError(t, err)
	require.Equal(t, 3, swimmers)
	require.Equal(t, 2, teams)
	return s
}

func TestListsAreActiveAndOrdered(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	list, err := s.ListSwimmers(ctx, "tenant-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alice Chen", list[0].Name)
	require.Equal(t, "bob lin", list[1].Name)
	require.NotNil(t, list[0].Team)
	require.Equal(t, "Harbour Sharks", list[0].Team.Name)
	require.Nil(t, list[1].Team)

	teams, err := s.ListTeams(ctx, "tenant-a")
	require.NoError(t, err)
	require.Len(t, teams, 1)

	other, err := s.ListSwimmers(ctx, core.DefaultTenantID)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestEqualNamesOrderByID(t *testing.T) {
	s := New()
	for _, id := range []string{"t3", "t1", "t2"} {
		s.PutTeam(core.Team{ID: id, TenantID: "tenant-a", Name: "Otters", IsActive: true})
	}
	for _, id := range []string{"s9", "s4", "s7", "s1"} {
		name := "Sam Lee"
		if id == "s7" {
			name = "sam lee"
		}
		s.PutSwimmer(core.Swimmer{ID: id, TenantID: "tenant-a", Name: name, IsActive: true})
	}

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		list, err := s.ListSwimmers(ctx, "tenant-a")
		require.NoError(t, err)
		var ids []string
		for _, sw := range list {
			ids = append(ids, sw.ID)
		}
		require.Equal(t, []string{"s1", "s4", "s7", "s9"}, ids)

		teams, err := s.ListTeams(ctx, "tenant-a")
		require.NoError(t, err)
		require.Equal(t, []string{"t1", "t2", "t3"}, []string{teams[0].ID, teams[1].ID, teams[2].ID})
	}
}

func TestUpsertSwimmer(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	created, err := s.UpsertSwimmer(ctx, "tenant-a", "", core.SwimmerInput{
		Name: "Cleo", GenderCode: "F", BirthDate: "2011-02-03", TeamID: "sharks",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsActive)
	require.Equal(t, "Harbour Sharks", created.TeamName())

	updated, err := s.UpsertSwimmer(ctx, "tenant-a", created.ID, core.SwimmerInput{
		Name: "Cleo Park", GenderCode: "F", BirthDate: "2011-02-03",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Cleo Park", updated.Name)
	require.Nil(t, updated.Team)

	_, err = s.UpsertSwimmer(ctx, "tenant-b", created.ID, core.SwimmerInput{Name: "X", GenderCode: "F", BirthDate: "2011-02-03"})
	require.ErrorIs(t, err, core.ErrSwimmerNotFound)

	_, err = s.UpsertSwimmer(ctx, "tenant-a", "", core.SwimmerInput{Name: "Y", GenderCode: "F", BirthDate: "2011-02-03", TeamID: "nope"})
	require.ErrorIs(t, err, core.ErrTeamNotFound)

	_, err = s.UpsertSwimmer(ctx, "tenant-b", "", core.SwimmerInput{Name: "Y", GenderCode: "F", BirthDate: "2011-02-03", TeamID: "sharks"})
	require.ErrorIs(t, err, core.ErrTeamNotFound)
}

func TestGetSwimmerScopedToTenant(t *testing.T) {
	s := seeded(t)
	_, err := s.GetSwimmer(context.Background(), core.DefaultTenantID, "s1")
	require.ErrorIs(t, err, core.ErrSwimmerNotFound)

	sw, err := s.GetSwimmer(context.Background(), "tenant-a", "s1")
	require.NoError(t, err)
	require.Equal(t, "2010/06/15", core.FormatBirthDate(sw.BirthDate))
}

func TestSeedRejectsInvalidFixtures(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "swimmers:\n  - name: A B\n    colour: red\n",
		"invalid gender": "swimmers:\n  - name: Ann\n    gender: Q\n    birth_date: \"2010-01-01\"\n",
		"unknown team":   "swimmers:\n  - name: Ann\n    gender: F\n    birth_date: \"2010-01-01\"\n    team: ghosts\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFixture(strings.NewReader(doc))
			if err == nil {
				_, _, err = New().Seed(f)
			}
			require.Error(t, err)
		})
	}
}

func TestDemoFixtureSeeds(t *testing.T) {
	s := New()
	swimmers, _, err := s.Seed(DemoFixture())
	require.NoError(t, err)

	list, err := s.ListSwimmers(context.Background(), core.DefaultTenantID)
	require.NoError(t, err)
	require.Len(t, list, swimmers)
}
