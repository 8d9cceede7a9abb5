package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// IconName identifies one of the built-in inline SVG icons.
type IconName string

const (
	IconInbox  IconName = "inbox"
	IconSearch IconName = "search"
	IconAlert  IconName = "alert"
	IconUsers  IconName = "users"
	IconPlus   IconName = "plus"
	IconEdit   IconName = "edit"
	IconUpload IconName = "upload"
	IconX      IconName = "x"
)

var iconPaths = map[IconName]string{
	IconInbox:  `<polyline points="22 12 16 12 14 15 10 15 8 12 2 12"></polyline><path d="M5.45 5.11 2 12v6a2 2 0 0 0 2 2h16a2 2 0 0 0 2-2v-6l-3.45-6.89A2 2 0 0 0 16.76 4H7.24a2 2 0 0 0-1.79 1.11z"></path>`,
	IconSearch: `<circle cx="11" cy="11" r="8"></circle><path d="m21 21-4.3-4.3"></path>`,
	IconAlert:  `<circle cx="12" cy="12" r="10"></circle><line x1="12" x2="12" y1="8" y2="12"></line><line x1="12" x2="12.01" y1="16" y2="16"></line>`,
	IconUsers:  `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"></path><circle cx="9" cy="7" r="4"></circle><path d="M22 21v-2a4 4 0 0 0-3-3.87"></path><path d="M16 3.13a4 4 0 0 1 0 7.75"></path>`,
	IconPlus:   `<path d="M5 12h14"></path><path d="M12 5v14"></path>`,
	IconEdit:   `<path d="M17 3a2.85 2.83 0 1 1 4 4L7.5 20.5 2 22l1.5-5.5Z"></path>`,
	IconUpload: `<path d="M21 15v4a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2v-4"></path><polyline points="17 8 12 3 7 8"></polyline><line x1="12" x2="12" y1="3" y2="15"></line>`,
	IconX:      `<path d="M18 6 6 18"></path><path d="m6 6 12 12"></path>`,
}

// Icon renders an inline SVG icon with the given classes. Unknown names
// render nothing.
func Icon(name IconName, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		paths, ok := iconPaths[name]
		if !ok {
			return nil
		}
		hw := NewWriter(ctx, w)
		hw.Raw(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"`)
		hw.Attr("class", class)
		hw.Attr("data-icon", string(name))
		hw.Raw(">")
		hw.Raw(paths)
		hw.Raw("</svg>")
		return hw.Err()
	})
}
