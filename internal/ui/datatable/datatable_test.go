package datatable_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/JonMunkholm/swimmeet/internal/status"
	"github.com/JonMunkholm/swimmeet/internal/ui"
	"github.com/JonMunkholm/swimmeet/internal/ui/badge"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type entry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Lane   int    `json:"lane"`
	Club   string `json:"club"`
	Heat   int    `json:"heat"`
	Seed   string `json:"seed_time"`
	Notes  string `json:"notes"`
}

func byName(e entry, _ int) string { return e.Name }

func renderHTML(t *testing.T, c templ.Component) string {
	t.Helper()
	got, err := ui.RenderString(context.Background(), c)
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}
	return got
}

func text(t *testing.T, c templ.Component) string {
	t.Helper()
	return renderHTML(t, c)
}

func TestAliceScenario(t *testing.T) {
	props := datatable.Props[entry]{
		Data: []entry{{Name: "Alice", Status: "CONFIRMED"}},
		Columns: []datatable.Column[entry]{
			{Key: "name", Header: "Name", MobileRole: datatable.RoleTitle},
			{
				Key:        "status",
				Header:     "Status",
				MobileRole: datatable.RoleBadge,
				Render: func(e entry, _ int) templ.Component {
					return badge.Entry(status.EntryStatus(e.Status))
				},
			},
		},
		KeyExtractor: byName,
	}

	v, err := datatable.Build(props)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	if len(v.Desktop.Rows) != 1 || len(v.Desktop.Rows[0].Cells) != 2 {
		t.Fatalf("desktop shape = %d rows, want 1 row with 2 cells", len(v.Desktop.Rows))
	}
	if got := text(t, v.Desktop.Rows[0].Cells[0].Content); got != "Alice" {
		t.Errorf("first cell = %q, want Alice", got)
	}
	if got := text(t, v.Desktop.Rows[0].Cells[1].Content); !strings.Contains(got, "confirmed") {
		t.Errorf("second cell = %q, want confirmed badge", got)
	}

	if len(v.Mobile.Cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(v.Mobile.Cards))
	}
	card := v.Mobile.Cards[0]
	if got := text(t, card.Title); got != "Alice" {
		t.Errorf("card title = %q, want Alice", got)
	}
	if card.Badge == nil || !strings.Contains(text(t, card.Badge), "confirmed") {
		t.Error("card has no confirmed badge")
	}
	if card.Subtitle != nil {
		t.Error("card has unexpected subtitle")
	}
	if len(card.Fields) != 0 {
		t.Errorf("card has %d extra fields, want 0", len(card.Fields))
	}

	html := renderHTML(t, datatable.Render(v))
	if strings.Contains(html, "data-card-fields") {
		t.Error("rendered an extra-fields grid for a title+badge card")
	}
	if n := strings.Count(html, "data-card-badge"); n != 1 {
		t.Errorf("rendered %d badges, want 1", n)
	}
}

func wideColumns() []datatable.Column[entry] {
	return []datatable.Column[entry]{
		{Key: "name", Header: "Name"},
		{Key: "status", Header: "Status", MobileRole: datatable.RoleBadge},
		{Key: "lane", Header: "Lane", Align: datatable.AlignRight},
		{Key: "club", Header: "Club"},
		{Key: "heat", Header: "Heat", MobileRole: datatable.RoleHidden},
		{Key: "seed_time", Header: "Seed"},
		{Key: "notes", Header: "Notes"},
		{Key: "Lane", Header: "Lane again"},
	}
}

func entries(n int) []entry {
	out := make([]entry, n)
	for i := range out {
		out[i] = entry{Name: fmt.Sprintf("swimmer %d", i), Status: "OK", Lane: i + 1, Club: "Sharks", Heat: 2}
	}
	return out
}

func TestDesktopShape(t *testing.T) {
	for _, n := range []int{1, 3, 17} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			cols := wideColumns()
			v, err := datatable.Build(datatable.Props[entry]{Data: entries(n), Columns: cols, KeyExtractor: byName})
			if err != nil {
				t.Fatalf("Build error = %v", err)
			}
			if len(v.Desktop.Rows) != n {
				t.Fatalf("rows = %d, want %d", len(v.Desktop.Rows), n)
			}
			var wantKeys []string
			for _, c := range cols {
				wantKeys = append(wantKeys, c.Key)
			}
			for i, row := range v.Desktop.Rows {
				var gotKeys []string
				for _, c := range row.Cells {
					gotKeys = append(gotKeys, c.Key)
				}
				if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
					t.Errorf("row %d cell order (-want +got):\n%s", i, diff)
				}
				if row.Index != i {
					t.Errorf("row %d index = %d", i, row.Index)
				}
			}

			html := renderHTML(t, datatable.Render(v))
			if got := strings.Count(html, "<tr "); got != n+1 {
				t.Errorf("rendered %d <tr>, want %d", got, n+1)
			}
			if got := strings.Count(html, "data-cell="); got != n*len(cols) {
				t.Errorf("rendered %d cells, want %d", got, n*len(cols))
			}
		})
	}
}

func TestMobileCardsCapExtraFields(t *testing.T) {
	v, err := datatable.Build(datatable.Props[entry]{Data: entries(5), Columns: wideColumns(), KeyExtractor: byName})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if len(v.Mobile.Cards) != 5 {
		t.Fatalf("cards = %d, want 5", len(v.Mobile.Cards))
	}

	var got []string
	for _, f := range v.Mobile.Cards[0].Fields {
		got = append(got, f.Key)
	}
	// name is the implicit title, status the badge, heat hidden; the
	// fifth remaining column is dropped.
	want := []string{"lane", "club", "seed_time", "notes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extra fields (-want +got):\n%s", diff)
	}

	html := renderHTML(t, datatable.Render(v))
	if n := strings.Count(html, "data-card-key="); n != 5 {
		t.Errorf("rendered %d cards, want 5", n)
	}
	if strings.Contains(html, `data-card-field="heat"`) {
		t.Error("hidden column rendered in card")
	}
	if !strings.Contains(html, `data-cell="heat"`) {
		t.Error("hidden column missing from desktop table")
	}
}

func TestImplicitTitleIsFirstColumn(t *testing.T) {
	tests := []struct {
		name         string
		cols         []datatable.Column[entry]
		wantTitle    string
		wantSubtitle bool
		wantBadge    bool
		wantFields   []string
	}{
		{
			name: "no roles",
			cols: []datatable.Column[entry]{
				{Key: "club", Header: "Club"},
				{Key: "name", Header: "Name"},
				{Key: "lane", Header: "Lane"},
			},
			wantTitle:  "Otters",
			wantFields: []string{"name", "lane"},
		},
		{
			name: "first column holds subtitle",
			cols: []datatable.Column[entry]{
				{Key: "name", Header: "Name", MobileRole: datatable.RoleSubtitle},
				{Key: "club", Header: "Club"},
				{Key: "lane", Header: "Lane"},
			},
			wantTitle:  "Bea",
			wantFields: []string{"club", "lane"},
		},
		{
			name: "first column holds badge",
			cols: []datatable.Column[entry]{
				{Key: "name", Header: "Name", MobileRole: datatable.RoleBadge},
				{Key: "club", Header: "Club", MobileRole: datatable.RoleSubtitle},
			},
			wantTitle:    "Bea",
			wantSubtitle: true,
		},
		{
			name: "every column has a role",
			cols: []datatable.Column[entry]{
				{Key: "name", Header: "Name", MobileRole: datatable.RoleSubtitle},
				{Key: "club", Header: "Club", MobileRole: datatable.RoleBadge},
			},
			wantTitle: "Bea",
			wantBadge: true,
		},
		{
			name: "hidden first column is skipped",
			cols: []datatable.Column[entry]{
				{Key: "heat", Header: "Heat", MobileRole: datatable.RoleHidden},
				{Key: "name", Header: "Name"},
				{Key: "lane", Header: "Lane"},
			},
			wantTitle:  "Bea",
			wantFields: []string{"lane"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := datatable.Build(datatable.Props[entry]{
				Data:         []entry{{Name: "Bea", Club: "Otters", Lane: 4, Heat: 2}},
				Columns:      tt.cols,
				KeyExtractor: byName,
			})
			if err != nil {
				t.Fatalf("Build error = %v", err)
			}
			card := v.Mobile.Cards[0]
			if card.Title == nil {
				t.Fatal("card has no title")
			}
			if got := text(t, card.Title); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
			if got := card.Subtitle != nil; got != tt.wantSubtitle {
				t.Errorf("has subtitle = %v, want %v", got, tt.wantSubtitle)
			}
			if got := card.Badge != nil; got != tt.wantBadge {
				t.Errorf("has badge = %v, want %v", got, tt.wantBadge)
			}
			var keys []string
			for _, f := range card.Fields {
				keys = append(keys, f.Key)
			}
			if diff := cmp.Diff(tt.wantFields, keys); diff != "" {
				t.Errorf("field keys (-want +got):\n%s", diff)
			}

			html := renderHTML(t, datatable.Render(v))
			if !strings.Contains(html, tt.wantTitle) {
				t.Errorf("rendered card missing title %q", tt.wantTitle)
			}
		})
	}
}

func TestLoadingIgnoresData(t *testing.T) {
	for _, tt := range []struct {
		name string
		rows int
		data []entry
		want int
	}{
		{name: "default no data", data: nil, want: datatable.DefaultLoadingRows},
		{name: "default lots of data", data: entries(500), want: 5},
		{name: "explicit rows", rows: 3, data: entries(1), want: 3},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v, err := datatable.Build(datatable.Props[entry]{
				Data:        tt.data,
				Columns:     wideColumns(),
				IsLoading:   true,
				LoadingRows: tt.rows,
			})
			if err != nil {
				t.Fatalf("Build error = %v", err)
			}
			if v.State != datatable.StateLoading || v.SkeletonRows != tt.want {
				t.Fatalf("state = %s with %d skeletons, want loading with %d", v.State, v.SkeletonRows, tt.want)
			}

			html := renderHTML(t, datatable.Render(v))
			if n := strings.Count(html, `data-skeleton="desktop"`); n != tt.want {
				t.Errorf("desktop skeletons = %d, want %d", n, tt.want)
			}
			if n := strings.Count(html, `data-skeleton="mobile"`); n != tt.want {
				t.Errorf("mobile skeletons = %d, want %d", n, tt.want)
			}
			if strings.Contains(html, "<table") || strings.Contains(html, "data-card-key") {
				t.Error("loading state rendered records")
			}
		})
	}
}

func TestEmptyBranch(t *testing.T) {
	html := renderHTML(t, datatable.Table(datatable.Props[entry]{Columns: wideColumns()}))
	if !strings.Contains(html, datatable.DefaultEmptyMessage) {
		t.Errorf("missing default message in %q", html)
	}
	for _, forbidden := range []string{"<table", "data-card-key", "data-skeleton"} {
		if strings.Contains(html, forbidden) {
			t.Errorf("empty branch rendered %q", forbidden)
		}
	}

	html = renderHTML(t, datatable.Table(datatable.Props[entry]{
		Data:         []entry{},
		EmptyMessage: "no entries yet",
		EmptyIcon:    ui.Icon(ui.IconInbox, "h-6 w-6"),
	}))
	if !strings.Contains(html, "no entries yet") || !strings.Contains(html, `data-icon="inbox"`) {
		t.Errorf("custom empty state not rendered: %q", html)
	}
}

func TestRenderPrecedenceAndIndex(t *testing.T) {
	var seen []int
	cols := []datatable.Column[entry]{
		{
			Key:      "name",
			Header:   "Name",
			Accessor: func(e entry) templ.Component { return ui.Text("accessor") },
			Render: func(e entry, i int) templ.Component {
				seen = append(seen, i)
				return ui.Text(fmt.Sprintf("%s#%d", e.Name, i))
			},
		},
		{Key: "club", Header: "Club", Accessor: func(e entry) templ.Component { return ui.Text("club:" + e.Club) }},
		{Key: "lane", Header: "Lane"},
	}
	dup := entry{Name: "Twin", Club: "A", Lane: 1}
	v, err := datatable.Build(datatable.Props[entry]{
		Data:         []entry{dup, dup, dup},
		Columns:      cols,
		KeyExtractor: func(e entry, i int) string { return fmt.Sprintf("%s-%d", e.Name, i) },
	})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	if diff := cmp.Diff([]int{0, 1, 2}, seen); diff != "" {
		t.Errorf("render indexes for equal records (-want +got):\n%s", diff)
	}
	row := v.Desktop.Rows[2]
	if got := text(t, row.Cells[0].Content); got != "Twin#2" {
		t.Errorf("render cell = %q, want Twin#2", got)
	}
	if got := text(t, row.Cells[1].Content); got != "club:A" {
		t.Errorf("accessor cell = %q, want club:A", got)
	}
	if got := text(t, row.Cells[2].Content); got != "1" {
		t.Errorf("key cell = %q, want 1", got)
	}
	if row.Key != "Twin-2" {
		t.Errorf("row key = %q, want Twin-2", row.Key)
	}
}

func TestKeyLookupOnMaps(t *testing.T) {
	type record = map[string]any
	v, err := datatable.Build(datatable.Props[record]{
		Data: []record{{"name": "Cleo", "active": true, "missing": nil}},
		Columns: []datatable.Column[record]{
			{Key: "name"}, {Key: "active"}, {Key: "missing"}, {Key: "absent"},
		},
		KeyExtractor: func(r record, i int) string { return fmt.Sprint(i) },
	})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	var got []string
	for _, c := range v.Desktop.Rows[0].Cells {
		got = append(got, text(t, c.Content))
	}
	if diff := cmp.Diff([]string{"Cleo", "Yes", "", ""}, got); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
}

func TestRowInteraction(t *testing.T) {
	html := renderHTML(t, datatable.Table(datatable.Props[entry]{
		Data:         []entry{{Name: "Ann"}, {Name: "Ben"}},
		Columns:      []datatable.Column[entry]{{Key: "name", Header: "Name"}},
		KeyExtractor: byName,
		OnRowClick: func(e entry) string {
			if e.Name == "Ann" {
				return "/swimmers/ann/edit"
			}
			return ""
		},
		RowTarget: "#main",
		RowClassName: func(e entry, i int) string {
			if i == 1 {
				return "bg-highlight"
			}
			return ""
		},
	}))

	// One desktop row and one card for Ann.
	if n := strings.Count(html, `hx-get="/swimmers/ann/edit"`); n != 2 {
		t.Errorf("hx-get count = %d, want 2", n)
	}
	if n := strings.Count(html, `hx-target="#main"`); n != 2 {
		t.Errorf("hx-target count = %d, want 2", n)
	}
	if n := strings.Count(html, "bg-highlight"); n != 2 {
		t.Errorf("row class count = %d, want 2", n)
	}
}

func TestLayoutSelectsTrees(t *testing.T) {
	props := datatable.Props[entry]{
		Data:         entries(2),
		Columns:      []datatable.Column[entry]{{Key: "name", Header: "Name", Width: "12rem"}},
		KeyExtractor: byName,
	}

	tests := []struct {
		layout      datatable.Layout
		wantDesktop bool
		wantMobile  bool
		wantHidden  bool
	}{
		{datatable.LayoutResponsive, true, true, true},
		{datatable.LayoutDesktop, true, false, false},
		{datatable.LayoutMobile, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			props.Layout = tt.layout
			html := renderHTML(t, datatable.Table(props))
			if got := strings.Contains(html, `data-tree="desktop"`); got != tt.wantDesktop {
				t.Errorf("desktop tree = %v, want %v", got, tt.wantDesktop)
			}
			if got := strings.Contains(html, `data-tree="mobile"`); got != tt.wantMobile {
				t.Errorf("mobile tree = %v, want %v", got, tt.wantMobile)
			}
			if got := strings.Contains(html, "md:hidden"); got != tt.wantHidden {
				t.Errorf("css gating = %v, want %v", got, tt.wantHidden)
			}
			if tt.wantDesktop && !strings.Contains(html, `style="width: 12rem"`) {
				t.Error("width hint not applied")
			}
		})
	}
}

func TestColumnValidation(t *testing.T) {
	tests := []struct {
		name    string
		props   datatable.Props[entry]
		wantErr error
	}{
		{
			name: "duplicate title",
			props: datatable.Props[entry]{
				Columns: []datatable.Column[entry]{
					{Key: "name", MobileRole: datatable.RoleTitle},
					{Key: "club", MobileRole: datatable.RoleTitle},
				},
			},
			wantErr: datatable.ErrDuplicateMobileRole,
		},
		{
			name: "duplicate badge while loading",
			props: datatable.Props[entry]{
				IsLoading: true,
				Columns: []datatable.Column[entry]{
					{Key: "status", MobileRole: datatable.RoleBadge},
					{Key: "heat", MobileRole: datatable.RoleBadge},
				},
			},
			wantErr: datatable.ErrDuplicateMobileRole,
		},
		{
			name: "bad align",
			props: datatable.Props[entry]{
				Columns: []datatable.Column[entry]{{Key: "name", Align: datatable.Align(9)}},
			},
			wantErr: datatable.ErrInvalidColumn,
		},
		{
			name: "missing key extractor",
			props: datatable.Props[entry]{
				Data:    entries(1),
				Columns: []datatable.Column[entry]{{Key: "name"}},
			},
			wantErr: datatable.ErrNoKeyExtractor,
		},
		{
			name:    "records without columns",
			props:   datatable.Props[entry]{Data: entries(1), KeyExtractor: byName},
			wantErr: datatable.ErrNoColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := datatable.Build(tt.props)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build error = %v, want %v", err, tt.wantErr)
			}
			if _, err := ui.RenderString(context.Background(), datatable.Table(tt.props)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Table render error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHideOnMobileIsInformational(t *testing.T) {
	cols := []datatable.Column[entry]{
		{Key: "name", Header: "Name"},
		{Key: "club", Header: "Club", HideOnMobile: true},
	}
	v, err := datatable.Build(datatable.Props[entry]{Data: entries(1), Columns: cols, KeyExtractor: byName})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if len(v.Desktop.Rows[0].Cells) != 2 || len(v.Mobile.Cards[0].Fields) != 1 {
		t.Errorf("HideOnMobile changed the projection: %d cells, %d fields",
			len(v.Desktop.Rows[0].Cells), len(v.Mobile.Cards[0].Fields))
	}
	if v.Desktop.Headers[0].HideOnMobile || !v.Desktop.Headers[1].HideOnMobile {
		t.Errorf("headers = %+v, want HideOnMobile on club only", v.Desktop.Headers)
	}
	html := renderHTML(t, datatable.Render(v))
	if !strings.Contains(html, `data-column="club" data-hide-on-mobile`) {
		t.Error("club header missing data-hide-on-mobile")
	}
}

func TestRenderPanicPropagates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("panic in Render callback was swallowed")
		}
	}()
	_, _ = datatable.Build(datatable.Props[entry]{
		Data: entries(1),
		Columns: []datatable.Column[entry]{{
			Key:    "name",
			Render: func(entry, int) templ.Component { panic("boom") },
		}},
		KeyExtractor: byName,
	})
}

func TestCellTextIsEscaped(t *testing.T) {
	html := renderHTML(t, datatable.Table(datatable.Props[entry]{
		Data:         []entry{{Name: `<b>"x"</b>`}},
		Columns:      []datatable.Column[entry]{{Key: "name", Header: "<Name>"}},
		KeyExtractor: byName,
	}))
	if strings.Contains(html, "<b>") || strings.Contains(html, "<Name>") {
		t.Errorf("markup not escaped: %q", html)
	}
}
