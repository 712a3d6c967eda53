// Package layouts wraps page bodies in the shared HTML shell.
package layouts

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

var navLinks = []struct {
	Href  string
	Label string
}{
	{"/", "Home"},
	{"/games", "Games"},
}

// Base renders a full page around content. A nil theme uses DefaultTheme.
func Base(title string, content templ.Component, theme *Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if title == "" {
			title = "Handball Recorder"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"/>`+
			`<title>`+html.EscapeString(title)+`</title>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/ws.js"></script>`+
			`<link rel="stylesheet" href="/static/css/main.css"/>`+
			`<style>`+themeCSSVars(theme)+`</style></head>`+
			`<body class="min-h-screen bg-gray-50 text-gray-900" hx-ext="ws">`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<nav class="flex gap-4 px-6 py-3" style="background:var(--theme-primary);color:var(--theme-on-primary)">`); err != nil {
			return err
		}
		for _, link := range navLinks {
			if _, err := io.WriteString(w, `<a class="hover:underline" href="`+link.Href+`">`+link.Label+`</a>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<div class="relative ml-auto"><input type="search" name="q" placeholder="Find player" class="rounded px-2 py-1 text-gray-900" `+
			`hx-get="/api/v1/players/search" hx-trigger="keyup changed delay:300ms" hx-target="#player-search-results" hx-swap="outerHTML"/>`+
			`<ul id="player-search-results"></ul></div>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</nav><main class="mx-auto max-w-6xl p-6">`); err != nil {
			return err
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main><div id="modal"></div></body></html>`)
		return err
	})
}

// Text renders s escaped. Handy for small fragments and tests.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.EscapeString(s))
		return err
	})
}
