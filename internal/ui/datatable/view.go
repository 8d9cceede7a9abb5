package datatable

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

const (
	// DefaultEmptyMessage is shown when no records are supplied.
	DefaultEmptyMessage = "no data"
	// DefaultLoadingRows is the skeleton count when Props.LoadingRows is unset.
	DefaultLoadingRows = 5
)

// Props configures one render of a table.
type Props[T any] struct {
	Data    []T
	Columns []Column[T]

	// KeyExtractor returns a unique, stable key per record.
	KeyExtractor func(item T, index int) string

	EmptyMessage string
	EmptyIcon    templ.Component

	IsLoading   bool
	LoadingRows int

	// OnRowClick returns the URL requested when a row or card is activated.
	// An empty return leaves that record inert.
	OnRowClick func(item T) string
	// RowTarget is the hx-target for OnRowClick responses. Without it the
	// browser navigates to the URL.
	RowTarget string

	RowClassName func(item T, index int) string
	ClassName    string

	Layout Layout
}

// State is the branch a View renders.
type State int

const (
	StatePopulated State = iota
	StateLoading
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	}
	return "populated"
}

// View is the non-generic projection of Props. Only the branch named by
// State is filled in.
type View struct {
	State     State
	Layout    Layout
	ClassName string
	RowTarget string

	SkeletonRows int
	Empty        EmptyView

	Desktop DesktopView
	Mobile  MobileView
}

// EmptyView is the empty-branch message and icon.
type EmptyView struct {
	Message string
	Icon    templ.Component
}

// DesktopView is the table projection.
type DesktopView struct {
	Headers []HeaderCell
	Rows    []Row
}

// HeaderCell is one column header. HideOnMobile is carried from the column
// as a hint; card placement is decided by the mobile role alone.
type HeaderCell struct {
	Key          string
	Label        string
	Align        Align
	Width        string
	HideOnMobile bool
}

// Row is one record in the desktop table.
type Row struct {
	Key   string
	Index int
	Class string
	Href  string
	Cells []Cell
}

// Cell is one column of one row.
type Cell struct {
	Key     string
	Align   Align
	Width   string
	Content templ.Component
}

// MobileView is the card projection.
type MobileView struct {
	Cards []Card
}

// Card is one record in the mobile list. Subtitle and Badge are nil when
// no column holds those roles.
type Card struct {
	Key      string
	Index    int
	Class    string
	Href     string
	Title    templ.Component
	Subtitle templ.Component
	Badge    templ.Component
	Fields   []Field
}

// Field is one label/value pair of a card's extra-fields grid.
type Field struct {
	Key     string
	Label   string
	Content templ.Component
}

// Build projects props into a View. It calls Render and Accessor once per
// record and column. Panics raised by those callbacks are not recovered.
func Build[T any](p Props[T]) (View, error) {
	if err := validateColumns(p.Columns); err != nil {
		return View{}, err
	}

	v := View{
		Layout:    p.Layout,
		ClassName: p.ClassName,
		RowTarget: p.RowTarget,
	}

	if p.IsLoading {
		v.State = StateLoading
		v.SkeletonRows = p.LoadingRows
		if v.SkeletonRows <= 0 {
			v.SkeletonRows = DefaultLoadingRows
		}
		return v, nil
	}

	if len(p.Data) == 0 {
		v.State = StateEmpty
		v.Empty = EmptyView{Message: p.EmptyMessage, Icon: p.EmptyIcon}
		if v.Empty.Message == "" {
			v.Empty.Message = DefaultEmptyMessage
		}
		return v, nil
	}

	if len(p.Columns) == 0 {
		return View{}, ErrNoColumns
	}
	if p.KeyExtractor == nil {
		return View{}, ErrNoKeyExtractor
	}

	v.State = StatePopulated
	v.Desktop.Headers = make([]HeaderCell, len(p.Columns))
	for i, c := range p.Columns {
		v.Desktop.Headers[i] = HeaderCell{Key: c.Key, Label: c.Header, Align: c.Align, Width: c.Width, HideOnMobile: c.HideOnMobile}
	}

	r := resolveRoles(p.Columns)
	v.Desktop.Rows = make([]Row, len(p.Data))
	v.Mobile.Cards = make([]Card, len(p.Data))

	for index, item := range p.Data {
		key := p.KeyExtractor(item, index)
		var class, href string
		if p.RowClassName != nil {
			class = p.RowClassName(item, index)
		}
		if p.OnRowClick != nil {
			href = p.OnRowClick(item)
		}

		content := make([]templ.Component, len(p.Columns))
		for i, c := range p.Columns {
			content[i] = cellContent(c, item, index)
		}

		row := Row{Key: key, Index: index, Class: class, Href: href, Cells: make([]Cell, len(p.Columns))}
		for i, c := range p.Columns {
			row.Cells[i] = Cell{Key: c.Key, Align: c.Align, Width: c.Width, Content: content[i]}
		}
		v.Desktop.Rows[index] = row

		card := Card{Key: key, Index: index, Class: class, Href: href}
		if r.title >= 0 {
			card.Title = content[r.title]
		}
		if r.subtitle >= 0 {
			card.Subtitle = content[r.subtitle]
		}
		if r.badge >= 0 {
			card.Badge = content[r.badge]
		}
		for _, i := range r.extras {
			card.Fields = append(card.Fields, Field{
				Key:     p.Columns[i].Key,
				Label:   p.Columns[i].Header,
				Content: content[i],
			})
		}
		v.Mobile.Cards[index] = card
	}

	return v, nil
}

func cellContent[T any](c Column[T], item T, index int) templ.Component {
	switch {
	case c.Render != nil:
		return nonNil(c.Render(item, index))
	case c.Accessor != nil:
		return nonNil(c.Accessor(item))
	default:
		return keyContent(item, c.Key)
	}
}

func nonNil(c templ.Component) templ.Component {
	if c == nil {
		return ui.Text("")
	}
	return c
}
