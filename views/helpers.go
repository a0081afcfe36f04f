package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// component wraps a rendered HTML string as a templ.Component.
func component(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// esc escapes a string for safe inclusion in HTML text or attribute content.
func esc(s string) string {
	return templ.EscapeString(s)
}

// layout wraps page content in the shared HTML chrome: head, nav, flash
// messages, and footer.
func layout(cfg SiteConfig, p Page, title, content string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s · %s</title>\n", esc(title), esc(cfg.Name))
	b.WriteString("<link rel=\"stylesheet\" href=\"/public/styles.css\">\n")
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<nav class=\"nav\">\n")
	fmt.Fprintf(&b, "<a class=\"brand\" href=\"/\">%s</a>\n", esc(cfg.Name))
	b.WriteString("<div class=\"links\">\n")
	b.WriteString("<a href=\"/about\">About</a>\n<a href=\"/contact\">Contact</a>\n")
	if p.IsAdmin {
		b.WriteString("<a href=\"/new-post\">New Post</a>\n<a href=\"/images\">Images</a>\n")
	}
	if p.LoggedIn {
		fmt.Fprintf(&b, "<span class=\"who\">%s</span>\n<a href=\"/logout\">Log Out</a>\n", esc(p.UserName))
	} else {
		b.WriteString("<a href=\"/login\">Log In</a>\n<a href=\"/register\">Register</a>\n")
	}
	b.WriteString("</div>\n</nav>\n")

	if len(p.Flashes) > 0 {
		b.WriteString("<ul class=\"flashes\">\n")
		for _, f := range p.Flashes {
			fmt.Fprintf(&b, "<li>%s</li>\n", esc(f))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<main class=\"container\">\n")
	b.WriteString(content)
	b.WriteString("</main>\n")
	fmt.Fprintf(&b, "<footer class=\"footer\">%s</footer>\n", esc(cfg.Name))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// csrfField renders the hidden CSRF input included in every POST form.
func csrfField(p Page) string {
	return fmt.Sprintf("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", esc(p.CSRF))
}

// textField renders a labeled input with a preserved value for form re-render.
func textField(kind, name, label, value string) string {
	return fmt.Sprintf("<label>%s<input type=\"%s\" name=\"%s\" value=\"%s\"></label>\n",
		esc(label), kind, name, esc(value))
}
