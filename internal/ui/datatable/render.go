package datatable

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// Table builds props and renders the resulting view. Build errors are
// returned from Render.
func Table[T any](p Props[T]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v, err := Build(p)
		if err != nil {
			return err
		}
		return Render(v).Render(ctx, w)
	})
}

// Render renders a built view.
func Render(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw("<div")
		hw.Attr("class", ui.Class("w-full", v.ClassName))
		hw.Raw(` data-datatable`)
		hw.Attr("data-state", v.State.String())
		hw.Attr("data-layout", v.Layout.String())
		hw.Raw(">")

		switch v.State {
		case StateLoading:
			writeSkeletons(hw, v)
		case StateEmpty:
			writeEmpty(hw, v.Empty)
		default:
			if v.Layout != LayoutMobile {
				writeDesktop(hw, v)
			}
			if v.Layout != LayoutDesktop {
				writeMobile(hw, v)
			}
		}

		hw.Raw("</div>")
		return hw.Err()
	})
}

func desktopClass(l Layout) string {
	return ui.Class("rounded-md border", templ.KV("hidden md:block", l == LayoutResponsive))
}

func mobileClass(l Layout) string {
	return ui.Class("space-y-3", templ.KV("md:hidden", l == LayoutResponsive))
}

func alignClass(a Align) string {
	switch a {
	case AlignCenter:
		return "text-center"
	case AlignRight:
		return "text-right"
	}
	return "text-left"
}

func widthStyle(width string) string {
	if width == "" {
		return ""
	}
	return "width: " + width
}

func writeSkeletons(hw *ui.Writer, v View) {
	if v.Layout != LayoutMobile {
		hw.Raw("<div")
		hw.Attr("class", ui.Class(desktopClass(v.Layout), "p-2 space-y-2"))
		hw.Raw(` data-tree="desktop">`)
		for i := 0; i < v.SkeletonRows; i++ {
			hw.Raw(`<div class="h-12 w-full animate-pulse rounded-md bg-muted" data-skeleton="desktop"></div>`)
		}
		hw.Raw("</div>")
	}
	if v.Layout != LayoutDesktop {
		hw.Raw("<div")
		hw.Attr("class", mobileClass(v.Layout))
		hw.Raw(` data-tree="mobile">`)
		for i := 0; i < v.SkeletonRows; i++ {
			hw.Raw(`<div class="rounded-lg border p-4 space-y-2" data-skeleton="mobile">`)
			hw.Raw(`<div class="h-5 w-1/2 animate-pulse rounded bg-muted"></div>`)
			hw.Raw(`<div class="h-4 w-1/3 animate-pulse rounded bg-muted"></div>`)
			hw.Raw(`</div>`)
		}
		hw.Raw("</div>")
	}
}

func writeEmpty(hw *ui.Writer, e EmptyView) {
	hw.Raw(`<div class="flex flex-col items-center justify-center py-12 text-center" data-empty>`)
	if e.Icon != nil {
		hw.Raw(`<div class="mb-4 text-muted-foreground">`)
		hw.Component(e.Icon)
		hw.Raw(`</div>`)
	}
	hw.Raw(`<p class="text-muted-foreground" data-empty-message>`)
	hw.Text(e.Message)
	hw.Raw(`</p></div>`)
}

// rowActivation writes the htmx attributes that make a row or card
// request href when clicked.
func rowActivation(hw *ui.Writer, href, target string) {
	if href == "" {
		return
	}
	if target == "" {
		target = "body"
	}
	hw.Attr("hx-get", href)
	hw.Attr("hx-target", target)
	hw.Raw(` hx-push-url="true"`)
}

func writeDesktop(hw *ui.Writer, v View) {
	hw.Raw("<div")
	hw.Attr("class", desktopClass(v.Layout))
	hw.Raw(` data-tree="desktop"><table class="w-full caption-bottom text-sm"><thead><tr class="border-b">`)
	for _, h := range v.Desktop.Headers {
		hw.Raw("<th")
		hw.Attr("class", ui.Class("h-10 px-3 align-middle font-medium text-muted-foreground", alignClass(h.Align)))
		hw.Attr("style", widthStyle(h.Width))
		hw.Attr("data-column", h.Key)
		if h.HideOnMobile {
			hw.Raw(` data-hide-on-mobile`)
		}
		hw.Raw(">")
		hw.Text(h.Label)
		hw.Raw("</th>")
	}
	hw.Raw("</tr></thead><tbody>")

	for _, row := range v.Desktop.Rows {
		hw.Raw("<tr")
		hw.Attr("class", ui.Class("border-b transition-colors hover:bg-muted/50", templ.KV("cursor-pointer", row.Href != ""), row.Class))
		hw.Attr("data-row-key", row.Key)
		hw.Attr("data-row-index", strconv.Itoa(row.Index))
		rowActivation(hw, row.Href, v.RowTarget)
		hw.Raw(">")
		for _, cell := range row.Cells {
			hw.Raw("<td")
			hw.Attr("class", ui.Class("p-3 align-middle", alignClass(cell.Align)))
			hw.Attr("style", widthStyle(cell.Width))
			hw.Attr("data-cell", cell.Key)
			hw.Raw(">")
			hw.Component(cell.Content)
			hw.Raw("</td>")
		}
		hw.Raw("</tr>")
	}
	hw.Raw("</tbody></table></div>")
}

func writeMobile(hw *ui.Writer, v View) {
	hw.Raw("<div")
	hw.Attr("class", mobileClass(v.Layout))
	hw.Raw(` data-tree="mobile">`)

	for _, card := range v.Mobile.Cards {
		hw.Raw("<div")
		hw.Attr("class", ui.Class("rounded-lg border bg-card p-4 shadow-sm", templ.KV("cursor-pointer active:bg-muted/50", card.Href != ""), card.Class))
		hw.Attr("data-card-key", card.Key)
		hw.Attr("data-card-index", strconv.Itoa(card.Index))
		rowActivation(hw, card.Href, v.RowTarget)
		hw.Raw(`><div class="flex items-start justify-between gap-2"><div class="min-w-0 flex-1">`)
		hw.Raw(`<div class="truncate font-semibold" data-card-title>`)
		hw.Component(card.Title)
		hw.Raw(`</div>`)
		if card.Subtitle != nil {
			hw.Raw(`<div class="truncate text-sm text-muted-foreground" data-card-subtitle>`)
			hw.Component(card.Subtitle)
			hw.Raw(`</div>`)
		}
		hw.Raw(`</div>`)
		if card.Badge != nil {
			hw.Raw(`<div class="shrink-0" data-card-badge>`)
			hw.Component(card.Badge)
			hw.Raw(`</div>`)
		}
		hw.Raw(`</div>`)

		if len(card.Fields) > 0 {
			hw.Raw(`<div class="mt-3 grid grid-cols-2 gap-x-4 gap-y-2 border-t pt-3 text-sm" data-card-fields>`)
			for _, f := range card.Fields {
				hw.Raw("<div")
				hw.Attr("data-card-field", f.Key)
				hw.Raw(`><div class="text-xs text-muted-foreground">`)
				hw.Text(f.Label)
				hw.Raw(`</div><div>`)
				hw.Component(f.Content)
				hw.Raw(`</div></div>`)
			}
			hw.Raw(`</div>`)
		}
		hw.Raw("</div>")
	}
	hw.Raw("</div>")
}
