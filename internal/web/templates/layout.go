// Package templates holds the page components of the web UI. They are
// written against templ.Component so they compose with the datatable,
// badge and emptystate packages.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// ContentID is the element every page body is swapped into.
const ContentID = "content"

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

// ScriptSources are the origins Layout loads scripts from.
var ScriptSources = []string{"https://unpkg.com", "https://cdn.tailwindcss.com"}

// htmxConfig swaps 422 form responses and error fragments instead of
// dropping them.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// Viewer describes who is looking at a page.
type Viewer struct {
	SignedIn    bool
	Name        string
	AuthEnabled bool
}

// CanEdit reports whether the viewer may add and edit swimmers. Without a
// configured auth provider every visitor may.
func (v Viewer) CanEdit() bool {
	return v.SignedIn || !v.AuthEnabled
}

// Page is the chrome around a body.
type Page struct {
	Title  string
	Active string
	Viewer Viewer
}

type navItem struct {
	key, label, href string
}

var nav = []navItem{
	{"swimmers", "Swimmers", "/swimmers"},
	{"statuses", "Statuses", "/statuses"},
}

// Layout renders a full HTML document with body inside #content.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		title := "Swim Meet"
		if p.Title != "" {
			title = p.Title + " · Swim Meet"
		}

		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`)
		hw.Text(title)
		hw.Raw(`</title>`)
		hw.Raw(`<meta name="htmx-config"`)
		hw.Attr("content", htmxConfig)
		hw.Raw(`>`)
		hw.Raw(`<script src="` + htmxSrc + `"></script>`)
		hw.Raw(`<script src="` + tailwindSrc + `"></script>`)
		hw.Raw(`</head><body class="min-h-screen bg-gray-50 text-gray-900">`)

		writeHeader(hw, p)

		hw.Raw(`<main class="container mx-auto px-4 py-6"`)
		hw.Attr("id", ContentID)
		hw.Raw(`>`)
		hw.Component(body)
		hw.Raw(`</main></body></html>`)
		return hw.Err()
	})
}

func writeHeader(hw *ui.Writer, p Page) {
	hw.Raw(`<header class="sticky top-0 z-40 border-b bg-white"><div class="container mx-auto flex items-center justify-between gap-4 px-4 py-3">`)
	hw.Raw(`<a href="/" class="text-lg font-bold text-blue-700">Swim Meet</a>`)

	hw.Raw(`<nav class="flex items-center gap-4 text-sm">`)
	for _, item := range nav {
		hw.Raw(`<a`)
		hw.Attr("href", item.href)
		hw.Attr("class", ui.Class("hover:text-gray-900", templ.KV("font-semibold text-gray-900", item.key == p.Active), templ.KV("text-gray-600", item.key != p.Active)))
		if item.key == p.Active {
			hw.Raw(` aria-current="page"`)
		}
		hw.Raw(`>`)
		hw.Text(item.label)
		hw.Raw(`</a>`)
	}
	hw.Raw(`</nav>`)

	hw.Raw(`<div class="flex items-center gap-2 text-sm" data-viewer>`)
	switch {
	case !p.Viewer.AuthEnabled:
	case p.Viewer.SignedIn:
		hw.Raw(`<span class="text-gray-600">`)
		hw.Text(p.Viewer.Name)
		hw.Raw(`</span><form method="post" action="/auth/signout"><button type="submit" class="rounded-md px-3 py-1.5 hover:bg-gray-100">Sign out</button></form>`)
	default:
		hw.Raw(`<a href="/auth/signin" class="rounded-md bg-blue-600 px-3 py-1.5 font-medium text-white hover:bg-blue-700">Sign in</a>`)
	}
	hw.Raw(`</div></div></header>`)
}
