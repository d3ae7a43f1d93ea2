package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/draftdesk/draftdesk/internal/session"
)

// layout wraps a page body in the shared HTML shell: head, nav, and the
// flash list for the current request. All dynamic values are escaped.
func layout(title string, flashes []session.Flash, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s — DraftDesk</title>`+
				`<link rel="stylesheet" href="/static/app.css"></head><body>`+
				`<nav class="nav"><a href="/" class="brand">DraftDesk</a></nav>`,
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if err := renderFlashes(w, flashes); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func renderFlashes(w io.Writer, flashes []session.Flash) error {
	if len(flashes) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, `<ul class="flashes">`); err != nil {
		return err
	}
	for _, f := range flashes {
		if _, err := fmt.Fprintf(w, `<li class="flash flash-%s">%s</li>`,
			templ.EscapeString(f.Category), templ.EscapeString(f.Message)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

// static returns a component that writes fixed markup.
func static(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}
