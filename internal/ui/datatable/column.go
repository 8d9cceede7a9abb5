// Package datatable renders a record sequence through a schema of columns
// into two synchronized projections: a desktop table (one row per record,
// one cell per column) and a mobile card list (one card per record, with
// title, subtitle, badge and up to four extra fields).
//
// Rendering happens in two steps. Build is a pure projection from Props
// to a View, which carries no generic type and can be rendered by the
// templ components in this package or by the terminal renderer. Table
// combines both steps for HTTP handlers.
package datatable

import (
	"errors"
	"fmt"

	"github.com/a-h/templ"
)

// Align is the horizontal alignment of a column's cells.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

func (a Align) valid() bool {
	return a >= AlignLeft && a <= AlignRight
}

// MobileRole places a column in the card layout.
type MobileRole int

const (
	// RoleNone puts the column in the extra-fields grid.
	RoleNone MobileRole = iota
	RoleTitle
	RoleSubtitle
	RoleBadge
	// RoleHidden keeps the column out of the card entirely.
	RoleHidden
)

func (r MobileRole) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleTitle:
		return "title"
	case RoleSubtitle:
		return "subtitle"
	case RoleBadge:
		return "badge"
	case RoleHidden:
		return "hidden"
	}
	return fmt.Sprintf("MobileRole(%d)", int(r))
}

func (r MobileRole) valid() bool {
	return r >= RoleNone && r <= RoleHidden
}

// Column describes one field of the projection for records of type T.
//
// Cell content resolves in order: Render, then Accessor, then a plain
// lookup of Key on the record (map key, struct field name or json tag).
type Column[T any] struct {
	Key    string
	Header string

	Render   func(item T, index int) templ.Component
	Accessor func(item T) templ.Component

	// HideOnMobile is carried for callers but has no effect on either
	// projection. Use RoleHidden to keep a column out of the cards.
	HideOnMobile bool

	Align Align
	// Width is copied into the desktop header and cells as a CSS width.
	Width      string
	MobileRole MobileRole
}

var (
	// ErrDuplicateMobileRole is returned when two columns claim the same
	// title, subtitle or badge slot.
	ErrDuplicateMobileRole = errors.New("datatable: duplicate mobile role")

	// ErrNoKeyExtractor is returned when rows are built without a key
	// extractor.
	ErrNoKeyExtractor = errors.New("datatable: key extractor is required")

	// ErrNoColumns is returned when records are supplied with no columns.
	ErrNoColumns = errors.New("datatable: at least one column is required")

	// ErrInvalidColumn is returned for an out-of-range Align or MobileRole.
	ErrInvalidColumn = errors.New("datatable: invalid column")
)

// ColumnError ties a column validation failure to the column position.
type ColumnError struct {
	Index int
	Key   string
	Err   error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d (%q): %v", e.Index, e.Key, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// roles is the resolved card placement for a column set. Indexes are -1
// when the slot is unused.
type roles struct {
	title    int
	subtitle int
	badge    int
	extras   []int
}

// MaxMobileFields caps the extra-fields grid of a card.
const MaxMobileFields = 4

func validateColumns[T any](cols []Column[T]) error {
	seen := make(map[MobileRole]int)
	for i, c := range cols {
		if !c.Align.valid() {
			return &ColumnError{Index: i, Key: c.Key, Err: fmt.Errorf("%w: align %s", ErrInvalidColumn, c.Align)}
		}
		if !c.MobileRole.valid() {
			return &ColumnError{Index: i, Key: c.Key, Err: fmt.Errorf("%w: mobile role %s", ErrInvalidColumn, c.MobileRole)}
		}
		switch c.MobileRole {
		case RoleTitle, RoleSubtitle, RoleBadge:
			if prev, ok := seen[c.MobileRole]; ok {
				return &ColumnError{
					Index: i,
					Key:   c.Key,
					Err:   fmt.Errorf("%w: %s already held by column %d", ErrDuplicateMobileRole, c.MobileRole, prev),
				}
			}
			seen[c.MobileRole] = i
		}
	}
	return nil
}

// resolveRoles assumes validateColumns has passed.
func resolveRoles[T any](cols []Column[T]) roles {
	r := roles{title: -1, subtitle: -1, badge: -1}
	for i, c := range cols {
		switch c.MobileRole {
		case RoleTitle:
			r.title = i
		case RoleSubtitle:
			r.subtitle = i
		case RoleBadge:
			r.badge = i
		}
	}

	// Without an explicit title the first column takes the slot, skipping
	// hidden ones. A column promoted to title leaves its own slot.
	if r.title == -1 && len(cols) > 0 {
		r.title = 0
		for i, c := range cols {
			if c.MobileRole != RoleHidden {
				r.title = i
				break
			}
		}
		if r.subtitle == r.title {
			r.subtitle = -1
		}
		if r.badge == r.title {
			r.badge = -1
		}
	}

	for i, c := range cols {
		if i == r.title || c.MobileRole != RoleNone {
			continue
		}
		if len(r.extras) == MaxMobileFields {
			break
		}
		r.extras = append(r.extras, i)
	}
	return r
}
