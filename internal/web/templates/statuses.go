package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/status"
	"github.com/JonMunkholm/swimmeet/internal/ui"
	"github.com/JonMunkholm/swimmeet/internal/ui/badge"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
)

// StatusRow is one code of a status domain.
type StatusRow struct {
	Domain status.Domain
	Code   string
}

// StatusColumns shows the label as the card title, the raw code as the
// subtitle and the badge as the card badge.
func StatusColumns() []datatable.Column[StatusRow] {
	return []datatable.Column[StatusRow]{
		{
			Key:        "label",
			Header:     "Label",
			MobileRole: datatable.RoleTitle,
			Accessor: func(r StatusRow) templ.Component {
				d, err := status.Lookup(r.Domain, r.Code)
				if err != nil {
					return failed(err)
				}
				return ui.Text(d.Label)
			},
		},
		{
			Key:        "Code",
			Header:     "Code",
			MobileRole: datatable.RoleSubtitle,
			Render: func(r StatusRow, _ int) templ.Component {
				return styledText("font-mono text-xs", r.Code)
			},
		},
		{
			Key:        "severity",
			Header:     "Severity",
			MobileRole: datatable.RoleHidden,
			Accessor: func(r StatusRow) templ.Component {
				d, err := status.Lookup(r.Domain, r.Code)
				if err != nil {
					return failed(err)
				}
				return ui.Text(string(d.Severity))
			},
		},
		{
			Key:        "badge",
			Header:     "Badge",
			Align:      datatable.AlignRight,
			MobileRole: datatable.RoleBadge,
			Render: func(r StatusRow, _ int) templ.Component {
				return badge.ForDomain(r.Domain, r.Code, badge.SizeDefault)
			},
		},
	}
}

// StatusRows lists every code of a domain.
func StatusRows(domain status.Domain) ([]StatusRow, error) {
	codes, err := status.Codes(domain)
	if err != nil {
		return nil, err
	}
	rows := make([]StatusRow, len(codes))
	for i, c := range codes {
		rows[i] = StatusRow{Domain: domain, Code: c}
	}
	return rows, nil
}

var domainTitles = map[status.Domain]string{
	status.DomainCompetition: "Competition",
	status.DomainEntry:       "Entry",
	status.DomainResult:      "Result",
	status.DomainPayment:     "Payment",
}

// Statuses is the reference page listing every status domain and the pool
// course badges.
func Statuses(layout datatable.Layout) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<h1 class="mb-6 text-2xl font-bold">Statuses</h1><div class="space-y-8">`)

		for _, domain := range status.Domains() {
			rows, err := StatusRows(domain)
			if err != nil {
				return err
			}
			hw.Raw(`<section`)
			hw.Attr("data-domain", string(domain))
			hw.Raw(`><h2 class="mb-3 text-lg font-semibold">`)
			hw.Text(domainTitles[domain])
			hw.Raw(`</h2>`)
			hw.Component(datatable.Table(datatable.Props[StatusRow]{
				Data:         rows,
				Columns:      StatusColumns(),
				KeyExtractor: func(r StatusRow, _ int) string { return string(r.Domain) + ":" + r.Code },
				Layout:       layout,
			}))
			hw.Raw(`</section>`)
		}

		hw.Raw(`<section data-domain="pool"><h2 class="mb-3 text-lg font-semibold">Pool course</h2><div class="flex flex-wrap gap-2">`)
		for _, course := range core.PoolCourses() {
			hw.Component(badge.PoolType(course))
		}
		hw.Raw(`</div></section></div>`)
		return hw.Err()
	})
}

func failed(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}
