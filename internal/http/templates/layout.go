package templates

import (
	"context"

	"github.com/a-h/templ"
)

// layout wraps a body component in the shared document shell: head, nav,
// footer with the configured social links.
func layout(p Page, title string, body templ.Component) templ.Component {
	return page(func(ctx context.Context, w *writer) {
		w.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		w.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		w.raw("<title>")
		if title != "" {
			w.text(title)
			w.raw(" • ")
		}
		w.text(p.SiteName)
		w.raw("</title>")
		w.raw("<link rel=\"stylesheet\" href=\"/static/style.css\">")
		w.raw("</head><body>")

		w.raw("<header class=\"site-header\"><nav>")
		w.raw("<a class=\"brand\" href=\"/\">")
		w.text(p.SiteName)
		w.raw("</a>")
		w.raw("<a href=\"/about\">About</a>")
		w.raw("<a href=\"/projects\">Projects</a>")
		w.raw("<a href=\"/blog\">Blog</a>")
		w.raw("<a href=\"/contact\">Contact</a>")
		if p.SignedIn {
			w.raw("<a href=\"/admin\">Admin</a>")
			w.raw("<a href=\"/auth/logout\">Logout</a>")
		}
		w.raw("</nav></header>")

		w.raw("<main>")
		w.component(ctx, body)
		w.raw("</main>")

		w.raw("<footer class=\"site-footer\">")
		if p.GitHubURL != "" {
			w.raw("<a")
			w.attr("href", p.GitHubURL)
			w.raw(">GitHub</a>")
		}
		if p.LinkedInURL != "" {
			w.raw("<a")
			w.attr("href", p.LinkedInURL)
			w.raw(">LinkedIn</a>")
		}
		if p.Email != "" {
			w.raw("<a")
			w.attr("href", "mailto:"+p.Email)
			w.raw(">Email</a>")
		}
		w.raw("<p>")
		w.text(p.Tagline)
		w.raw("</p></footer>")

		w.raw("</body></html>")
	})
}

// ErrorPage renders a uniform error view.
func ErrorPage(p Page, data ErrorData) templ.Component {
	body := page(func(_ context.Context, w *writer) {
		w.raw("<section class=\"error-page\"><h1>")
		w.text(data.StatusLabel)
		w.raw("</h1><p>")
		w.text(data.Message)
		w.raw("</p><p><a href=\"/\">Back to home</a></p></section>")
	})

	return layout(p, data.StatusLabel, body)
}
