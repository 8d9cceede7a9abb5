// Package postgres is the core.Store backed by PostgreSQL through pgx.
//
// Queries are built with squirrel using dollar placeholders. The store
// expects the swimmers and teams tables to exist; it does not migrate.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements core.Store.
type Store struct {
	db  DBTX
	now func() time.Time
}

// New wraps a pool or transaction.
func New(db DBTX) *Store {
	return &Store{db: db, now: time.Now}
}

var _ core.Store = (*Store)(nil)

var swimmerColumns = []string{
	"s.id::text",
	"s.tenant_id::text",
	"s.team_id::text",
	"s.name",
	"s.gender_code",
	"s.birth_date",
	"s.photo_url",
	"s.contact_email",
	"s.contact_phone",
	"s.emergency_contact_name",
	"s.emergency_contact_phone",
	"s.is_active",
	"s.created_at",
	"s.updated_at",
	"t.name",
}

func swimmersQuery(tenantID string) sq.SelectBuilder {
	return psql.Select(swimmerColumns...).
		From("swimmers s").
		LeftJoin("teams t ON t.id = s.team_id").
		Where(sq.Eq{"s.tenant_id": tenantID})
}

func listSwimmersQuery(tenantID string) sq.SelectBuilder {
	return swimmersQuery(tenantID).
		Where(sq.Eq{"s.is_active": true}).
		OrderBy("lower(s.name) ASC", "s.id ASC")
}

func getSwimmerQuery(tenantID, id string) sq.SelectBuilder {
	return swimmersQuery(tenantID).Where(sq.Eq{"s.id": id})
}

func listTeamsQuery(tenantID string) sq.SelectBuilder {
	return psql.Select("id::text", "tenant_id::text", "name", "is_active").
		From("teams").
		Where(sq.Eq{"tenant_id": tenantID, "is_active": true}).
		OrderBy("lower(name) ASC", "id ASC")
}

func swimmerValues(in core.SwimmerInput) (map[string]any, error) {
	birth := ToPgDate(in.BirthDate)
	if !birth.Valid {
		return nil, fmt.Errorf("invalid date %q", in.BirthDate)
	}
	return map[string]any{
		"team_id":                 ToPgUUID(in.TeamID),
		"name":                    in.Name,
		"gender_code":             in.GenderCode,
		"birth_date":              birth,
		"photo_url":               ToPgText(in.PhotoURL),
		"contact_email":           ToPgText(in.ContactEmail),
		"contact_phone":           ToPgText(in.ContactPhone),
		"emergency_contact_name":  ToPgText(in.EmergencyContactName),
		"emergency_contact_phone": ToPgText(in.EmergencyContactPhone),
	}, nil
}

func insertSwimmerQuery(tenantID, id string, in core.SwimmerInput, now time.Time) (sq.InsertBuilder, error) {
	values, err := swimmerValues(in)
	if err != nil {
		return sq.InsertBuilder{}, err
	}
	values["id"] = id
	values["tenant_id"] = tenantID
	values["is_active"] = true
	values["created_at"] = now
	values["updated_at"] = now
	return psql.Insert("swimmers").SetMap(values), nil
}

func updateSwimmerQuery(tenantID, id string, in core.SwimmerInput, now time.Time) (sq.UpdateBuilder, error) {
	values, err := swimmerValues(in)
	if err != nil {
		return sq.UpdateBuilder{}, err
	}
	values["updated_at"] = now
	return psql.Update("swimmers").
		SetMap(values).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}), nil
}

// ListSwimmers returns the tenant's active swimmers ordered by name.
func (s *Store) ListSwimmers(ctx context.Context, tenantID string) ([]core.Swimmer, error) {
	rows, err := qQuery(ctx, s.db, listSwimmersQuery(tenantID))
	if err != nil {
		return nil, fmt.Errorf("query swimmers: %w", err)
	}
	defer rows.Close()

	var out []core.Swimmer
	for rows.Next() {
		sw, err := scanSwimmer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swimmer: %w", err)
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swimmers: %w", err)
	}
	return out, nil
}

// GetSwimmer returns one swimmer of the tenant.
func (s *Store) GetSwimmer(ctx context.Context, tenantID, id string) (core.Swimmer, error) {
	row, err := qRow(ctx, s.db, getSwimmerQuery(tenantID, id))
	if err != nil {
		return core.Swimmer{}, err
	}
	sw, err := scanSwimmer(row)
	if err != nil {
		if isNotFound(err) {
			return core.Swimmer{}, core.ErrSwimmerNotFound
		}
		return core.Swimmer{}, fmt.Errorf("scan swimmer: %w", err)
	}
	return sw, nil
}

// UpsertSwimmer inserts a new swimmer when id is empty and updates the
// existing one otherwise.
func (s *Store) UpsertSwimmer(ctx context.Context, tenantID, id string, in core.SwimmerInput) (core.Swimmer, error) {
	now := s.now().UTC()

	if id == "" {
		id = newID()
		q, err := insertSwimmerQuery(tenantID, id, in, now)
		if err != nil {
			return core.Swimmer{}, err
		}
		if _, err := qExec(ctx, s.db, q); err != nil {
			return core.Swimmer{}, translate(err, in)
		}
		return s.GetSwimmer(ctx, tenantID, id)
	}

	q, err := updateSwimmerQuery(tenantID, id, in, now)
	if err != nil {
		return core.Swimmer{}, err
	}
	tag, err := qExec(ctx, s.db, q)
	if err != nil {
		if isNotFound(err) {
			return core.Swimmer{}, core.ErrSwimmerNotFound
		}
		return core.Swimmer{}, translate(err, in)
	}
	if tag.RowsAffected() == 0 {
		return core.Swimmer{}, core.ErrSwimmerNotFound
	}
	return s.GetSwimmer(ctx, tenantID, id)
}

// ListTeams returns the tenant's active teams ordered by name.
func (s *Store) ListTeams(ctx context.Context, tenantID string) ([]core.Team, error) {
	rows, err := qQuery(ctx, s.db, listTeamsQuery(tenantID))
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Team, error) {
		var t core.Team
		err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.IsActive)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan teams: %w", err)
	}
	return teams, nil
}

func scanSwimmer(row pgx.Row) (core.Swimmer, error) {
	var (
		sw                                         core.Swimmer
		teamID, photo, email, phone, ecName, ecTel pgtype.Text
		teamName                                   pgtype.Text
		gender                                     string
		birth                                      pgtype.Date
	)
	err := row.Scan(
		&sw.ID,
		&sw.TenantID,
		&teamID,
		&sw.Name,
		&gender,
		&birth,
		&photo,
		&email,
		&phone,
		&ecName,
		&ecTel,
		&sw.IsActive,
		&sw.CreatedAt,
		&sw.UpdatedAt,
		&teamName,
	)
	if err != nil {
		return core.Swimmer{}, err
	}

	sw.GenderCode = core.GenderCode(gender)
	sw.BirthDate = FromPgDate(birth)
	sw.TeamID = FromPgText(teamID)
	sw.PhotoURL = FromPgText(photo)
	sw.ContactEmail = FromPgText(email)
	sw.ContactPhone = FromPgText(phone)
	sw.EmergencyContactName = FromPgText(ecName)
	sw.EmergencyContactPhone = FromPgText(ecTel)
	if sw.TeamID != "" && teamName.Valid {
		sw.Team = &core.TeamRef{ID: sw.TeamID, Name: teamName.String}
	}
	return sw, nil
}

func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

func translate(err error, in core.SwimmerInput) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return fmt.Errorf("%w: %s: %w", core.ErrTeamNotFound, in.TeamID, err)
		}
	}
	return err
}
