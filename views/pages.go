package views

import (
	"bytes"
	"net/url"

	"github.com/a-h/templ"

	"github.com/okvist/inkwell/markdown"
)

// Home renders the full blog listing page.
func Home(site Site, posts []Post, activeTag string, tags []string) templ.Component {
	return component(func(b *bytes.Buffer) {
		meta := PageMeta{
			Title:       site.Name,
			Description: site.Description,
			URL:         buildURL(site.URL),
			OGType:      "website",
		}
		layout(b, site, meta, WebsiteJsonLD(site), func(b *bytes.Buffer) {
			homeBody(b, posts, activeTag, tags)
		})
	})
}

// HomePartial renders the home page content without the layout shell, for
// HTMX swaps.
func HomePartial(site Site, posts []Post, activeTag string, tags []string) templ.Component {
	return component(func(b *bytes.Buffer) {
		homeBody(b, posts, activeTag, tags)
	})
}

// BlogSection renders just the filterable post list.
func BlogSection(posts []Post, activeTag string, tags []string) templ.Component {
	return component(func(b *bytes.Buffer) {
		blogSection(b, posts, activeTag, tags)
	})
}

func homeBody(b *bytes.Buffer, posts []Post, activeTag string, tags []string) {
	b.WriteString(`<section class="intro"><h1>Latest posts</h1></section>`)
	blogSection(b, posts, activeTag, tags)
}

func blogSection(b *bytes.Buffer, posts []Post, activeTag string, tags []string) {
	b.WriteString(`<section id="blog" class="post-list">`)

	if len(tags) > 0 {
		b.WriteString(`<div class="tag-filter">`)
		writeTagPill(b, "/", "all", activeTag == "")
		for _, t := range tags {
			writeTagPill(b, "/?tag="+url.QueryEscape(t), t, t == activeTag)
		}
		b.WriteString("</div>")
	}

	if len(posts) == 0 {
		b.WriteString(`<p class="empty">Nothing here yet.</p>`)
	}
	for _, p := range posts {
		b.WriteString(`<article class="post-card">`)
		b.WriteString(`<h2><a href="` + esc(p.Link) + `/" hx-get="` + esc(p.Link) +
			`/?partial=post" hx-target="#main" hx-push-url="` + esc(p.Link) + `/">` + esc(p.Title) + `</a></h2>`)
		b.WriteString(`<time datetime="` + esc(p.Date) + `">` + esc(p.Date) + `</time>`)
		if p.Description != "" {
			b.WriteString("<p>" + esc(p.Description) + "</p>")
		}
		b.WriteString("</article>")
	}
	b.WriteString("</section>")
}

func writeTagPill(b *bytes.Buffer, href, label string, active bool) {
	class := "tag-pill"
	if active {
		class += " active"
	}
	b.WriteString(`<a class="` + class + `" href="` + esc(href) +
		`" hx-get="` + esc(href) + `" hx-target="#blog" hx-push-url="true">` + esc(label) + `</a>`)
}

// PostPage renders a full blog post page, markdown body included.
func PostPage(site Site, post Post, posts []Post, md *markdown.Renderer) templ.Component {
	return component(func(b *bytes.Buffer) {
		meta := PageMeta{
			Title:       post.Title,
			Description: post.Description,
			Image:       post.Image,
			URL:         buildURL(site.URL, "blog", post.Slug),
			OGType:      "article",
		}
		layout(b, site, meta, BlogPostingJsonLD(site, post), func(b *bytes.Buffer) {
			postBody(b, post, posts, md)
		})
	})
}

// PostPartial renders the post content without the layout shell.
func PostPartial(site Site, post Post, posts []Post, md *markdown.Renderer) templ.Component {
	return component(func(b *bytes.Buffer) {
		postBody(b, post, posts, md)
	})
}

func postBody(b *bytes.Buffer, post Post, posts []Post, md *markdown.Renderer) {
	b.WriteString(`<article class="post">`)
	b.WriteString("<h1>" + esc(post.Title) + "</h1>")
	b.WriteString(`<time datetime="` + esc(post.Date) + `">` + esc(post.Date) + `</time>`)
	if len(post.Tags) > 0 {
		b.WriteString(`<div class="post-tags">`)
		for _, t := range post.Tags {
			b.WriteString(`<a class="tag-pill" href="/?tag=` + esc(url.QueryEscape(t)) + `">` + esc(t) + `</a>`)
		}
		b.WriteString("</div>")
	}
	b.WriteString(`<div class="post-content">`)
	md.Render(b, post.Content)
	b.WriteString("</div></article>")

	if related := RelatedPosts(post, posts); len(related) > 0 {
		b.WriteString(`<aside class="related"><h2>Related posts</h2><ul>`)
		for _, p := range related {
			b.WriteString(`<li><a href="` + esc(p.Link) + `/">` + esc(p.Title) + `</a></li>`)
		}
		b.WriteString("</ul></aside>")
	}
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return statusPage(site, "404", "This page does not exist.")
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return statusPage(site, "500", "Something went wrong. Try again later.")
}

func statusPage(site Site, code, message string) templ.Component {
	return component(func(b *bytes.Buffer) {
		meta := PageMeta{Title: code + " | " + site.Name}
		layout(b, site, meta, "", func(b *bytes.Buffer) {
			b.WriteString(`<section class="status-page"><h1>` + esc(code) + `</h1><p>` + esc(message) + `</p>`)
			b.WriteString(`<p><a href="/">Back to the front page</a></p></section>`)
		})
	})
}
