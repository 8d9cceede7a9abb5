// Package termview renders a datatable.View for a terminal.
//
// It consumes the same projection the HTML renderer does, so the roster
// command and the web page agree on rows, card roles and the empty and
// loading branches. Wide terminals get a bordered table; narrow ones get the
// card list. Cell components are rendered to HTML and flattened back to text
// with golang.org/x/net/html; badges keep their severity as a colour.
package termview

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/swimmeet/internal/status"
	"github.com/JonMunkholm/swimmeet/internal/ui"
	"github.com/JonMunkholm/swimmeet/internal/ui/datatable"
)

// Breakpoint is the terminal width, in columns, at which the table replaces
// the card list.
const Breakpoint = 100

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#d1d5db")).Padding(0, 1)
	skeletonText = "░░░░░░░░░░░░"
)

var severityColors = map[status.Severity]lipgloss.Color{
	status.SeverityDefault: lipgloss.Color("#2563eb"),
	status.SeveritySuccess: lipgloss.Color("#16a34a"),
	status.SeverityWarning: lipgloss.Color("#ca8a04"),
	status.SeverityError:   lipgloss.Color("#dc2626"),
	status.SeverityInfo:    lipgloss.Color("#0891b2"),
	status.SeverityNeutral: lipgloss.Color("#6b7280"),
}

// Options controls a render.
type Options struct {
	// Width is the terminal width. Zero means Breakpoint.
	Width int
	// Plain disables colour.
	Plain bool
}

// Render writes v to w. Responsive views choose the table or the cards by
// width; desktop and mobile views always use their own tree.
func Render(ctx context.Context, w io.Writer, v datatable.View, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = Breakpoint
	}
	r := renderer{ctx: ctx, plain: opts.Plain}

	var out string
	var err error
	switch v.State {
	case datatable.StateLoading:
		out = r.loading(v, opts.Width)
	case datatable.StateEmpty:
		out = r.empty(v)
	default:
		if useTable(v.Layout, opts.Width) {
			out, err = r.table(v.Desktop, opts.Width)
		} else {
			out, err = r.cards(v.Mobile, opts.Width)
		}
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

func useTable(l datatable.Layout, width int) bool {
	switch l {
	case datatable.LayoutDesktop:
		return true
	case datatable.LayoutMobile:
		return false
	}
	return width >= Breakpoint
}

type renderer struct {
	ctx   context.Context
	plain bool
}

func (r renderer) style(s lipgloss.Style) lipgloss.Style {
	if r.plain {
		return s.UnsetForeground().UnsetBorderForeground()
	}
	return s
}

func (r renderer) loading(v datatable.View, width int) string {
	lines := make([]string, v.SkeletonRows)
	for i := range lines {
		lines[i] = r.style(mutedStyle).Render(skeletonText)
	}
	if useTable(v.Layout, width) {
		return strings.Join(lines, "\n")
	}
	for i := range lines {
		lines[i] = r.style(cardStyle).Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

func (r renderer) empty(v datatable.View) string {
	return r.style(mutedStyle).Render(v.Empty.Message)
}

func (r renderer) table(d datatable.DesktopView, width int) (string, error) {
	headers := make([]string, len(d.Headers))
	aligns := make([]lipgloss.Position, len(d.Headers))
	for i, h := range d.Headers {
		headers[i] = h.Label
		aligns[i] = position(h.Align)
	}

	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			text, err := r.text(c.Content)
			if err != nil {
				return "", fmt.Errorf("row %s column %s: %w", row.Key, c.Key, err)
			}
			cells[j] = text
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.style(borderStyle)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := cellStyle
			if row == table.HeaderRow {
				base = headerStyle
			}
			if col >= 0 && col < len(aligns) {
				base = base.Align(aligns[col])
			}
			return base
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render(), nil
}

func (r renderer) cards(m datatable.MobileView, width int) (string, error) {
	out := make([]string, 0, len(m.Cards))
	for _, c := range m.Cards {
		var lines []string

		title, err := r.text(c.Title)
		if err != nil {
			return "", fmt.Errorf("card %s title: %w", c.Key, err)
		}
		badge, err := r.text(c.Badge)
		if err != nil {
			return "", fmt.Errorf("card %s badge: %w", c.Key, err)
		}
		head := r.style(titleStyle).Render(title)
		if badge != "" {
			head += "  " + badge
		}
		lines = append(lines, head)

		if c.Subtitle != nil {
			sub, err := r.text(c.Subtitle)
			if err != nil {
				return "", fmt.Errorf("card %s subtitle: %w", c.Key, err)
			}
			lines = append(lines, r.style(mutedStyle).Render(sub))
		}

		for _, f := range c.Fields {
			val, err := r.text(f.Content)
			if err != nil {
				return "", fmt.Errorf("card %s field %s: %w", c.Key, f.Key, err)
			}
			lines = append(lines, r.style(mutedStyle).Render(f.Label+":")+" "+val)
		}

		style := r.style(cardStyle)
		if width > 4 {
			style = style.Width(width - 2)
		}
		out = append(out, style.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(out, "\n"), nil
}

// text renders c and flattens the markup to a single line.
func (r renderer) text(c templ.Component) (string, error) {
	if c == nil {
		return "", nil
	}
	markup, err := ui.RenderString(r.ctx, c)
	if err != nil {
		return "", err
	}
	spans, err := flatten(markup)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.severity != "" && !r.plain {
			if color, ok := severityColors[s.severity]; ok {
				parts = append(parts, lipgloss.NewStyle().Foreground(color).Render(s.text))
				continue
			}
		}
		parts = append(parts, s.text)
	}
	return strings.Join(parts, " "), nil
}

func position(a datatable.Align) lipgloss.Position {
	switch a {
	case datatable.AlignCenter:
		return lipgloss.Center
	case datatable.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Left
}
