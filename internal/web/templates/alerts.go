package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
	"github.com/JonMunkholm/swimmeet/internal/ui/emptystate"
)

// ErrorAlert is the htmx error fragment: the error presenter with the
// suggested action and the error code underneath.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<div role="alert" class="rounded-lg border border-red-200 bg-white" data-error-code="`)
		hw.Text(code)
		hw.Raw(`">`)
		hw.Component(emptystate.Error(message, ""))
		if action != "" || code != "" {
			hw.Raw(`<p class="pb-6 text-center text-xs text-gray-500">`)
			hw.Text(action)
			if code != "" {
				if action != "" {
					hw.Text(" ")
				}
				hw.Text("(" + code + ")")
			}
			hw.Raw(`</p>`)
		}
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// ErrorPage is the full-page error body, with a retry link back to retryHref.
func ErrorPage(message, retryHref string) templ.Component {
	return emptystate.Error(message, retryHref)
}

// Notice is a one-line success message.
func Notice(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<div role="status" class="mb-4 rounded-md border border-green-200 bg-green-50 px-4 py-2 text-sm text-green-800" data-notice>`)
		hw.Text(message)
		hw.Raw(`</div>`)
		return hw.Err()
	})
}
