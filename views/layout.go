package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// component wraps a buffer-writing render function as a templ.Component.
func component(render func(b *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		render(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// layout writes the full page shell around body: head with SEO/OpenGraph
// metadata and JSON-LD, site header, footer.
func layout(b *bytes.Buffer, site Site, meta PageMeta, jsonLD string, body func(*bytes.Buffer)) {
	title := meta.Title
	if title == "" {
		title = site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}

	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
	b.WriteString(`<meta charset="utf-8"/>`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString("<title>" + esc(title) + "</title>")
	if desc != "" {
		b.WriteString(`<meta name="description" content="` + esc(desc) + `"/>`)
	}
	if meta.URL != "" {
		b.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `"/>`)
		b.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `"/>`)
	}
	b.WriteString(`<meta property="og:title" content="` + esc(title) + `"/>`)
	if desc != "" {
		b.WriteString(`<meta property="og:description" content="` + esc(desc) + `"/>`)
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	b.WriteString(`<meta property="og:type" content="` + esc(ogType) + `"/>`)
	if meta.Image != "" {
		b.WriteString(`<meta property="og:image" content="` + esc(meta.Image) + `"/>`)
	}
	b.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
	b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(site.Name) + `" href="/feed.xml"/>`)
	b.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
	b.WriteString(`<link rel="stylesheet" href="/public/highlight.css"/>`)
	b.WriteString(`<script src="/public/htmx.min.js" defer></script>`)
	b.WriteString(`<script>addEventListener("load",function(){` +
		`fetch("/api/stats/hit",{method:"POST",headers:{"Content-Type":"application/json"},` +
		`body:JSON.stringify({path:location.pathname,referrer:document.referrer})}).catch(function(){})` +
		`})</script>`)
	if jsonLD != "" {
		b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	b.WriteString("</head><body>")

	b.WriteString(`<header class="site-header"><nav>`)
	b.WriteString(`<a href="/" class="site-title">` + esc(site.Name) + `</a>`)
	b.WriteString(`<a href="/feed.xml" class="nav-link">RSS</a>`)
	b.WriteString("</nav></header>")

	b.WriteString(`<main id="main">`)
	body(b)
	b.WriteString("</main>")

	b.WriteString(`<footer class="site-footer"><p>`)
	if site.Author != "" {
		b.WriteString("&copy; " + esc(site.Author))
	} else {
		b.WriteString("&copy; " + esc(site.Name))
	}
	b.WriteString("</p></footer>")
	b.WriteString("</body></html>")
}
