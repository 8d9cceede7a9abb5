package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

type feature struct {
	icon        ui.IconName
	title, body string
}

var features = []feature{
	{ui.IconEdit, "Online entries", "Swimmers enter events, pick distances and pay online in one flow."},
	{ui.IconSearch, "QR check-in", "Swimmers scan in at the venue and the desk sees who has arrived."},
	{ui.IconUsers, "Roster management", "Keep swimmer details, teams and photos in one place."},
	{ui.IconUpload, "Results", "Publish heats and results as soon as a race is finished."},
}

// Home is the landing page body.
func Home(v Viewer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<section class="py-16 text-center">`)
		hw.Raw(`<h1 class="mb-6 text-4xl font-bold md:text-5xl">Swim meet management</h1>`)
		hw.Raw(`<p class="mx-auto mb-8 max-w-2xl text-lg text-gray-600">Entries, check-in, marshalling and results in one place.</p>`)
		hw.Raw(`<div class="flex flex-col justify-center gap-4 sm:flex-row">`)
		hw.Raw(`<a href="/swimmers" class="rounded-md bg-blue-600 px-6 py-3 font-medium text-white hover:bg-blue-700">Open roster</a>`)
		if v.AuthEnabled && !v.SignedIn {
			hw.Raw(`<a href="/auth/signin" class="rounded-md border px-6 py-3 font-medium hover:bg-gray-100">Sign in</a>`)
		}
		hw.Raw(`</div></section>`)

		hw.Raw(`<section class="grid gap-6 pb-16 md:grid-cols-2 lg:grid-cols-4" id="features">`)
		for _, f := range features {
			hw.Raw(`<div class="rounded-lg border bg-white p-6 shadow-sm"><div class="mb-3 text-blue-600">`)
			hw.Component(ui.Icon(f.icon, "h-8 w-8"))
			hw.Raw(`</div><h3 class="mb-2 font-semibold">`)
			hw.Text(f.title)
			hw.Raw(`</h3><p class="text-sm text-gray-600">`)
			hw.Text(f.body)
			hw.Raw(`</p></div>`)
		}
		hw.Raw(`</section>`)
		return hw.Err()
	})
}
