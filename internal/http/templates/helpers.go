package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// RawHTML returns a templ component that writes the provided HTML without
// escaping. Used for admin-authored Markdown that was already rendered.
func RawHTML(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := io.WriteString(w, content)
		return err
	})
}

// writer accumulates HTML output, remembering the first write error so the
// component bodies stay free of error plumbing.
type writer struct {
	out io.Writer
	err error
}

func newWriter(out io.Writer) *writer {
	return &writer{out: out}
}

// raw writes the string as-is.
func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

// text writes the string HTML-escaped.
func (w *writer) text(s string) {
	w.raw(html.EscapeString(s))
}

// rawf writes a formatted string as-is; arguments must already be safe.
func (w *writer) rawf(format string, args ...any) {
	w.raw(fmt.Sprintf(format, args...))
}

// attr writes a key="value" attribute pair with the value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" ")
	w.raw(name)
	w.raw(`="`)
	w.text(value)
	w.raw(`"`)
}

// component renders a nested component through the same error channel.
func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.out)
}

// page adapts a writer-based body into a templ component.
func page(render func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w := newWriter(out)
		render(ctx, w)
		return w.err
	})
}
