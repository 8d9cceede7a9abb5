// Package badge renders status and pool-course badges.
//
// Badges for status codes always go through the status registry keyed by
// domain. A code outside its domain makes the component return an error
// from Render instead of drawing an empty badge.
package badge

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/status"
	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// Size scales the badge padding and text.
type Size int

const (
	SizeDefault Size = iota
	SizeSmall
	SizeLarge
)

var severityClasses = map[status.Severity]string{
	status.SeverityDefault: "bg-secondary text-secondary-foreground",
	status.SeveritySuccess: "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-100",
	status.SeverityWarning: "bg-yellow-100 text-yellow-800 dark:bg-yellow-900 dark:text-yellow-100",
	status.SeverityError:   "bg-red-100 text-red-800 dark:bg-red-900 dark:text-red-100",
	status.SeverityInfo:    "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-100",
	status.SeverityNeutral: "bg-gray-100 text-gray-800 dark:bg-gray-800 dark:text-gray-100",
}

var sizeClasses = map[Size]string{
	SizeSmall:   "px-2 py-0.5 text-xs",
	SizeDefault: "px-2.5 py-0.5 text-xs",
	SizeLarge:   "px-3 py-1 text-sm",
}

// Status draws a resolved display.
func Status(d status.Display, size Size) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		writeBadge(hw, d, size)
		return hw.Err()
	})
}

func writeBadge(hw *ui.Writer, d status.Display, size Size) {
	hw.Raw("<span")
	hw.Attr("class", ui.Class(
		"inline-flex items-center whitespace-nowrap rounded-full border border-transparent font-medium",
		severityClasses[d.Severity],
		sizeClasses[size],
	))
	hw.Raw(" data-badge")
	hw.Attr("data-severity", string(d.Severity))
	hw.Raw(">")
	hw.Text(d.Label)
	hw.Raw("</span>")
}

// lookup defers resolution to render time so the registry error surfaces
// from Render.
func lookup(resolve func() (status.Display, error), size Size) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d, err := resolve()
		if err != nil {
			return err
		}
		hw := ui.NewWriter(ctx, w)
		writeBadge(hw, d, size)
		return hw.Err()
	})
}

// Competition draws a competition lifecycle badge.
func Competition(code status.CompetitionStatus) templ.Component {
	return lookup(code.Display, SizeDefault)
}

// Entry draws a race entry badge.
func Entry(code status.EntryStatus) templ.Component {
	return lookup(code.Display, SizeDefault)
}

// Result draws a race result badge.
func Result(code status.ResultStatus) templ.Component {
	return lookup(code.Display, SizeDefault)
}

// Payment draws a payment badge.
func Payment(code status.PaymentStatus) templ.Component {
	return lookup(code.Display, SizeDefault)
}

// ForDomain draws the badge for a raw code read from storage.
func ForDomain(domain status.Domain, code string, size Size) templ.Component {
	return lookup(func() (status.Display, error) {
		return status.Lookup(domain, code)
	}, size)
}

// PoolType draws a neutral pool course badge such as "long course (50m)".
func PoolType(course core.PoolCourse) templ.Component {
	return lookup(func() (status.Display, error) {
		label, err := course.Label()
		if err != nil {
			return status.Display{}, err
		}
		return status.Display{Label: label, Severity: status.SeverityNeutral}, nil
	}, SizeSmall)
}
