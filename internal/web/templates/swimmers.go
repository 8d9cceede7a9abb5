package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/ui"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
	"github.com/JonMunkholm/swimmeet/internal/ui/emptystate"
)

// RosterID is the element the roster partial replaces.
const RosterID = "roster"

// SwimmerColumns is the roster projection. The avatar and edit columns are
// desktop only; the card shows the name as title and gender as subtitle.
func SwimmerColumns(now time.Time, canEdit bool) []datatable.Column[core.Swimmer] {
	cols := []datatable.Column[core.Swimmer]{
		{
			Key:        "avatar",
			Width:      "3.5rem",
			MobileRole: datatable.RoleHidden,
			Render: func(s core.Swimmer, _ int) templ.Component {
				return Avatar(s.Name, s.PhotoURL, "h-10 w-10")
			},
		},
		{
			Key:        "name",
			Header:     "Name",
			MobileRole: datatable.RoleTitle,
			Render: func(s core.Swimmer, _ int) templ.Component {
				return styledText("font-medium", s.Name)
			},
		},
		{
			Key:        "gender",
			Header:     "Gender",
			MobileRole: datatable.RoleSubtitle,
			Accessor: func(s core.Swimmer) templ.Component {
				return ui.Text(s.GenderCode.Label())
			},
		},
		{
			Key:    "birth_date",
			Header: "Birth date",
			Accessor: func(s core.Swimmer) templ.Component {
				return ui.Text(core.FormatBirthDate(s.BirthDate))
			},
		},
		{
			Key:    "age",
			Header: "Age",
			Accessor: func(s core.Swimmer) templ.Component {
				return ui.Text(strconv.Itoa(core.Age(s.BirthDate, now)))
			},
		},
		{
			Key:    "team",
			Header: "Team",
			Accessor: func(s core.Swimmer) templ.Component {
				if name := s.TeamName(); name != "" {
					return ui.Text(name)
				}
				return styledText("text-gray-400", "-")
			},
		},
	}
	if canEdit {
		cols = append(cols, datatable.Column[core.Swimmer]{
			Key:        "actions",
			Align:      datatable.AlignRight,
			Width:      "4rem",
			MobileRole: datatable.RoleHidden,
			Render: func(s core.Swimmer, _ int) templ.Component {
				return editButton(s)
			},
		})
	}
	return cols
}

// EditHref is the edit page of a swimmer.
func EditHref(id string) string {
	return "/swimmers/" + url.PathEscape(id) + "/edit"
}

// SwimmersData is everything the roster page and partial need.
type SwimmersData struct {
	Viewer Viewer
	Filter core.SwimmerFilter
	Teams  []core.Team
	Layout datatable.Layout
	Now    time.Time

	// Loading renders the skeleton with a trigger that fetches the roster.
	Loading bool
	// All is the unfiltered roster and Visible the filtered one.
	All     []core.Swimmer
	Visible []core.Swimmer
	// Err is the user-facing load error, if any.
	Err    string
	Notice string
}

// Query returns the filter as the roster query string.
func (d SwimmersData) Query() string {
	q := url.Values{}
	if d.Filter.Search != "" {
		q.Set("q", d.Filter.Search)
	}
	if d.Filter.Team != "" && d.Filter.Team != core.FilterAll {
		q.Set("team", d.Filter.Team)
	}
	if d.Filter.Gender != "" && d.Filter.Gender != core.FilterAll {
		q.Set("gender", d.Filter.Gender)
	}
	if d.Layout != datatable.LayoutResponsive {
		q.Set("layout", d.Layout.String())
	}
	if len(q) == 0 {
		return "/swimmers"
	}
	return "/swimmers?" + q.Encode()
}

// SwimmersPage is the roster page body: heading, filter toolbar and the
// roster partial. Signed-out viewers get a sign-in prompt instead.
func SwimmersPage(d SwimmersData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		if d.Viewer.AuthEnabled && !d.Viewer.SignedIn {
			hw.Component(SignInPrompt("sign in to view swimmers"))
			return hw.Err()
		}

		hw.Raw(`<div class="mb-6 flex items-center justify-between gap-4"><h1 class="text-2xl font-bold">Swimmers</h1>`)
		if d.Viewer.CanEdit() {
			hw.Raw(`<a href="/swimmers/new" hx-get="/swimmers/new"`)
			hw.Attr("hx-target", "#"+ContentID)
			hw.Raw(` hx-push-url="true" class="inline-flex items-center gap-2 rounded-md bg-blue-600 px-4 py-2 text-sm font-medium text-white hover:bg-blue-700" data-add-swimmer>`)
			hw.Component(ui.Icon(ui.IconPlus, "h-4 w-4"))
			hw.Raw(`Add swimmer</a>`)
		}
		hw.Raw(`</div>`)

		if d.Notice != "" {
			hw.Component(Notice(d.Notice))
		}

		writeToolbar(hw, d)
		hw.Component(Roster(d))
		return hw.Err()
	})
}

func writeToolbar(hw *ui.Writer, d SwimmersData) {
	hw.Raw(`<form class="mb-4 flex flex-col gap-3 sm:flex-row" action="/swimmers" method="get" hx-get="/swimmers"`)
	hw.Attr("hx-target", "#"+RosterID)
	hw.Raw(` hx-swap="outerHTML" hx-push-url="true" hx-trigger="input changed delay:300ms from:input[name=q], change" data-roster-filter>`)

	hw.Raw(`<div class="relative flex-1"><span class="pointer-events-none absolute left-3 top-1/2 -translate-y-1/2 text-gray-400">`)
	hw.Component(ui.Icon(ui.IconSearch, "h-4 w-4"))
	hw.Raw(`</span><input type="search" name="q" placeholder="search name or team" class="w-full rounded-md border py-2 pl-9 pr-3 text-sm"`)
	hw.Attr("value", d.Filter.Search)
	hw.Raw(`></div>`)

	hw.Raw(`<select name="gender" class="rounded-md border px-3 py-2 text-sm" aria-label="gender">`)
	writeOption(hw, core.FilterAll, "all genders", d.Filter.Gender)
	for _, g := range core.SwimmerGenders() {
		writeOption(hw, string(g), g.Label(), d.Filter.Gender)
	}
	hw.Raw(`</select>`)

	hw.Raw(`<select name="team" class="rounded-md border px-3 py-2 text-sm" aria-label="team">`)
	writeOption(hw, core.FilterAll, "all teams", d.Filter.Team)
	writeOption(hw, core.TeamNone, "no team", d.Filter.Team)
	for _, t := range d.Teams {
		writeOption(hw, t.ID, t.Name, d.Filter.Team)
	}
	hw.Raw(`</select>`)

	if d.Layout != datatable.LayoutResponsive {
		hw.Raw(`<input type="hidden" name="layout"`)
		hw.Attr("value", d.Layout.String())
		hw.Raw(`>`)
	}
	hw.Raw(`<noscript><button type="submit" class="rounded-md border px-3 py-2 text-sm">Filter</button></noscript></form>`)
}

func writeOption(hw *ui.Writer, value, label, selected string) {
	if selected == "" {
		selected = core.FilterAll
	}
	writeChoice(hw, value, label, selected)
}

// Roster is the swappable list: the count line and the table, or the empty,
// filtered-empty, loading or error presenter.
func Roster(d SwimmersData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<div`)
		hw.Attr("id", RosterID)
		if d.Loading {
			hw.Attr("hx-get", d.Query())
			hw.Raw(` hx-trigger="load" hx-swap="outerHTML"`)
		}

		if d.Err != "" {
			hw.Raw(` data-view-state="error">`)
			p := emptystate.ErrorProps(d.Err, d.Query())
			p.Action.Target = "#" + RosterID
			hw.Component(emptystate.EmptyState(p))
			hw.Raw(`</div>`)
			return hw.Err()
		}

		state := emptystate.DeriveState(d.Loading, len(d.All), len(d.Visible))
		hw.Attr("data-view-state", state.String())
		hw.Raw(`>`)

		switch state {
		case emptystate.Empty:
			add := ""
			if d.Viewer.CanEdit() {
				add = "/swimmers/new"
			}
			hw.Component(emptystate.NoData("swimmers", add))
		case emptystate.FilteredEmpty:
			hw.Component(emptystate.NoSearchResults(d.Filter.Search, "/swimmers"))
		default:
			if state == emptystate.Populated {
				hw.Raw(`<p class="mb-3 text-sm text-gray-500" data-roster-count>`)
				hw.Text(countLine(len(d.Visible), len(d.All)))
				hw.Raw(`</p>`)
			}
			hw.Component(datatable.Table(rosterProps(d)))
		}

		hw.Raw(`</div>`)
		return hw.Err()
	})
}

func rosterProps(d SwimmersData) datatable.Props[core.Swimmer] {
	p := datatable.Props[core.Swimmer]{
		Data:         d.Visible,
		Columns:      SwimmerColumns(d.Now, d.Viewer.CanEdit()),
		KeyExtractor: func(s core.Swimmer, _ int) string { return s.ID },
		EmptyMessage: "no swimmers",
		IsLoading:    d.Loading,
		LoadingRows:  5,
		Layout:       d.Layout,
	}
	if d.Viewer.CanEdit() {
		p.OnRowClick = func(s core.Swimmer) string { return EditHref(s.ID) }
		p.RowTarget = "#" + ContentID
		p.RowClassName = func(core.Swimmer, int) string { return "cursor-pointer hover:bg-gray-50" }
	}
	return p
}

func countLine(visible, total int) string {
	noun := "swimmers"
	if total == 1 {
		noun = "swimmer"
	}
	if visible == total {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d of %d %s", visible, total, noun)
}

func editButton(s core.Swimmer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		href := EditHref(s.ID)
		hw.Raw(`<a class="inline-flex rounded-md p-2 text-gray-500 hover:bg-gray-100 hover:text-gray-900"`)
		hw.Attr("href", href)
		hw.Attr("hx-get", href)
		hw.Attr("hx-target", "#"+ContentID)
		hw.Raw(` hx-trigger="click consume" hx-push-url="true"`)
		hw.Attr("aria-label", "edit "+s.Name)
		hw.Raw(`>`)
		hw.Component(ui.Icon(ui.IconEdit, "h-4 w-4"))
		hw.Raw(`</a>`)
		return hw.Err()
	})
}

// Avatar draws a round photo, or the initials when there is none.
func Avatar(name, photoURL, size string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<span`)
		hw.Attr("class", ui.Class("inline-flex shrink-0 items-center justify-center overflow-hidden rounded-full bg-gray-200 text-sm font-medium text-gray-600", size))
		hw.Raw(` data-avatar>`)
		if photoURL != "" {
			hw.Raw(`<img class="h-full w-full object-cover"`)
			hw.Attr("src", string(templ.URL(photoURL)))
			hw.Attr("alt", name)
			hw.Raw(`>`)
		} else {
			hw.Text(core.Initials(name))
		}
		hw.Raw(`</span>`)
		return hw.Err()
	})
}

// SignInPrompt asks a signed-out viewer to sign in.
func SignInPrompt(title string) templ.Component {
	return emptystate.EmptyState(emptystate.Props{
		Icon:        ui.Icon(ui.IconUsers, "h-8 w-8"),
		Title:       title,
		Description: "the roster is only visible to signed-in staff",
		Action:      &emptystate.Action{Label: "sign in", Href: "/auth/signin"},
	})
}

func styledText(class, s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<span`)
		hw.Attr("class", class)
		hw.Raw(`>`)
		hw.Text(s)
		hw.Raw(`</span>`)
		return hw.Err()
	})
}
