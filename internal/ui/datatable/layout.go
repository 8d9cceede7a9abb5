package datatable

import (
	"net/http"
	"strconv"
	"strings"
)

// Layout selects which projection(s) a Table emits.
type Layout int

const (
	// LayoutResponsive emits both trees and lets CSS pick one at the md
	// breakpoint.
	LayoutResponsive Layout = iota
	LayoutDesktop
	LayoutMobile
)

func (l Layout) String() string {
	switch l {
	case LayoutDesktop:
		return "desktop"
	case LayoutMobile:
		return "mobile"
	}
	return "responsive"
}

// Breakpoint is the viewport width in CSS pixels at which the desktop
// table replaces the cards. It matches the md breakpoint in the markup.
const Breakpoint = 768

// ParseLayout maps "desktop", "mobile" and "responsive" to a Layout.
func ParseLayout(s string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return LayoutDesktop, true
	case "mobile":
		return LayoutMobile, true
	case "responsive":
		return LayoutResponsive, true
	}
	return LayoutResponsive, false
}

// LayoutFromRequest decides the layout on the server when the client tells
// us enough to do so. An explicit layout query value wins, then the
// Sec-CH-Viewport-Width or Viewport-Width client hint. Anything else is
// responsive.
func LayoutFromRequest(r *http.Request) Layout {
	if l, ok := ParseLayout(r.URL.Query().Get("layout")); ok {
		return l
	}
	for _, h := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		raw := strings.TrimSpace(r.Header.Get(h))
		if raw == "" {
			continue
		}
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || width <= 0 {
			continue
		}
		if width >= Breakpoint {
			return LayoutDesktop
		}
		return LayoutMobile
	}
	return LayoutResponsive
}

// ClientHintsHeader is the Accept-CH value that asks browsers to send the
// viewport width on subsequent requests.
const ClientHintsHeader = "Sec-CH-Viewport-Width, Viewport-Width"
