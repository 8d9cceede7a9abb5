// Package emptystate renders the placeholder shown in place of a list that
// has nothing to show: no data yet, no search results, or a load error.
//
// Each variant is picked by the caller; none is inferred from data. An
// action, when present, is a link or htmx request to the endpoint that
// performs it.
package emptystate

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// Action is the single button of an empty state.
type Action struct {
	Label string
	// Href is requested when the button is activated.
	Href string
	// Target, when set, makes the button an htmx request whose response
	// replaces that element. Otherwise the button is a plain link.
	Target string
}

// Props is the generic empty state.
type Props struct {
	Icon        templ.Component
	Title       string
	Description string
	Action      *Action
	ClassName   string
}

// DefaultErrorMessage is the description of Error when none is given.
const DefaultErrorMessage = "an error occurred while loading data"

// EmptyState renders p.
func EmptyState(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw("<div")
		hw.Attr("class", ui.Class("flex flex-col items-center justify-center px-4 py-12 text-center", p.ClassName))
		hw.Raw(` data-empty-state>`)

		if p.Icon != nil {
			hw.Raw(`<div class="mb-4 rounded-full bg-muted p-4 text-muted-foreground">`)
			hw.Component(p.Icon)
			hw.Raw(`</div>`)
		}

		hw.Raw(`<h3 class="mb-2 text-lg font-semibold" data-empty-title>`)
		hw.Text(p.Title)
		hw.Raw(`</h3>`)

		if p.Description != "" {
			hw.Raw(`<p class="mb-4 max-w-sm text-sm text-muted-foreground" data-empty-description>`)
			hw.Text(p.Description)
			hw.Raw(`</p>`)
		}

		if a := p.Action; a != nil && a.Href != "" {
			writeAction(hw, *a)
		}

		hw.Raw(`</div>`)
		return hw.Err()
	})
}

const actionClass = "inline-flex items-center justify-center gap-2 rounded-md bg-primary px-4 py-2 text-sm font-medium text-primary-foreground hover:bg-primary/90"

func writeAction(hw *ui.Writer, a Action) {
	if a.Target == "" {
		hw.Raw("<a")
		hw.Attr("class", actionClass)
		hw.Attr("href", string(templ.URL(a.Href)))
		hw.Raw(" data-empty-action>")
		hw.Text(a.Label)
		hw.Raw("</a>")
		return
	}
	hw.Raw(`<button type="button"`)
	hw.Attr("class", actionClass)
	hw.Attr("hx-get", a.Href)
	hw.Attr("hx-target", a.Target)
	hw.Raw(` hx-swap="outerHTML" data-empty-action>`)
	hw.Text(a.Label)
	hw.Raw("</button>")
}

// NoDataProps is the copy for an empty collection of entity. The add
// action and its description appear only when addHref is set.
func NoDataProps(entity, addHref string) Props {
	if entity == "" {
		entity = "data"
	}
	p := Props{
		Icon:  ui.Icon(ui.IconInbox, "h-8 w-8"),
		Title: "no " + entity,
	}
	if addHref != "" {
		p.Description = "click the button below to add " + entity
		p.Action = &Action{Label: "add " + entity, Href: addHref}
	}
	return p
}

// NoSearchResultsProps is the copy for a filter that matched nothing.
func NoSearchResultsProps(searchTerm, clearHref string) Props {
	p := Props{
		Icon:        ui.Icon(ui.IconSearch, "h-8 w-8"),
		Title:       "no results",
		Description: "try adjusting your search or filters",
	}
	if searchTerm != "" {
		p.Description = fmt.Sprintf("no results match %q, try another keyword", searchTerm)
	}
	if clearHref != "" {
		p.Action = &Action{Label: "clear filters", Href: clearHref}
	}
	return p
}

// ErrorProps is the copy for a failed load. message defaults to
// DefaultErrorMessage.
func ErrorProps(message, retryHref string) Props {
	if message == "" {
		message = DefaultErrorMessage
	}
	p := Props{
		Icon:        ui.Icon(ui.IconAlert, "h-8 w-8 text-destructive"),
		Title:       "an error occurred",
		Description: message,
	}
	if retryHref != "" {
		p.Action = &Action{Label: "retry", Href: retryHref}
	}
	return p
}

// NoData renders NoDataProps.
func NoData(entity, addHref string) templ.Component {
	return EmptyState(NoDataProps(entity, addHref))
}

// NoSearchResults renders NoSearchResultsProps.
func NoSearchResults(searchTerm, clearHref string) templ.Component {
	return EmptyState(NoSearchResultsProps(searchTerm, clearHref))
}

// Error renders ErrorProps.
func Error(message, retryHref string) templ.Component {
	return EmptyState(ErrorProps(message, retryHref))
}
