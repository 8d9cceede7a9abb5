// Package ui holds the small helpers shared by the hand-written templ
// components: an error-accumulating HTML writer, text and class helpers,
// and the inline icon set.
package ui

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments to an io.Writer and keeps the first error.
// Once an error has occurred every later call is a no-op, so component
// bodies can be written top to bottom and checked once at the end.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewWriter wraps w for a single component render.
func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes trusted markup verbatim.
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s HTML-escaped.
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped. Empty values are skipped.
func (hw *Writer) Attr(name, value string) {
	if value == "" {
		return
	}
	hw.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// Component renders a nested component. Nil components render nothing.
func (hw *Writer) Component(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

// Fail records err unless an earlier error is already held.
func (hw *Writer) Fail(err error) {
	if hw.err == nil {
		hw.err = err
	}
}

// Err returns the first error encountered.
func (hw *Writer) Err() error {
	return hw.err
}

// Text returns a component that renders s escaped.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Class joins class names, dropping empty ones. It accepts anything
// templ.Classes accepts, including templ.KV pairs for conditional classes.
func Class(classes ...any) string {
	return templ.Classes(classes...).String()
}

// RenderString renders c into a string. It is used by tests and by the
// terminal renderer, which reads cell markup back as text.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	if c == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
