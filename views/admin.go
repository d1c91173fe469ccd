package views

import (
	"bytes"
	"strconv"

	"github.com/a-h/templ"
)

// AdminLogin renders the password prompt.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		meta := PageMeta{Title: "Admin | " + site.Name}
		layout(b, site, meta, "", func(b *bytes.Buffer) {
			b.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
			if showError {
				b.WriteString(`<p class="error">Wrong password.</p>`)
			}
			b.WriteString(`<form method="post" action="/admin/login/">`)
			writeCsrf(b, csrfToken)
			b.WriteString(`<input type="password" name="password" placeholder="Password" autofocus/>`)
			b.WriteString(`<button type="submit">Log in</button>`)
			b.WriteString("</form></section>")
		})
	})
}

// AdminDashboard renders the post management page.
func AdminDashboard(site Site, posts []Post, message, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		meta := PageMeta{Title: "Dashboard | " + site.Name}
		layout(b, site, meta, "", func(b *bytes.Buffer) {
			b.WriteString(`<section class="admin-dashboard"><h1>Posts</h1>`)
			if message != "" {
				b.WriteString(`<p class="notice">` + esc(message) + `</p>`)
			}
			b.WriteString(`<p><a href="/admin/images/">Manage images</a> &middot; <a href="/admin/stats/">Stats</a></p>`)
			b.WriteString(`<form method="post" action="/admin/logout/">`)
			writeCsrf(b, csrfToken)
			b.WriteString(`<button type="submit">Log out</button></form>`)

			b.WriteString(`<table class="admin-posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
			for _, p := range posts {
				status := "draft"
				if p.Published {
					status = "published"
				}
				b.WriteString("<tr>")
				b.WriteString(`<td><a href="/admin/post/` + esc(p.Slug) + `/" hx-get="/admin/post/` + esc(p.Slug) +
					`/" hx-target="#editor">` + esc(p.Title) + `</a></td>`)
				b.WriteString("<td>" + esc(p.Date) + "</td>")
				b.WriteString("<td>" + status + "</td>")
				b.WriteString(`<td><button hx-delete="/admin/post/` + esc(p.Slug) +
					`/" hx-confirm="Delete this post?" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}'>Delete</button></td>`)
				b.WriteString("</tr>")
			}
			b.WriteString("</tbody></table>")

			b.WriteString(`<div id="editor">`)
			adminForm(b, Post{}, csrfToken)
			b.WriteString("</div></section>")
		})
	})
}

// AdminFormPartial renders the post editor form, for HTMX swaps into the
// dashboard.
func AdminFormPartial(post Post, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		adminForm(b, post, csrfToken)
	})
}

func adminForm(b *bytes.Buffer, post Post, csrfToken string) {
	b.WriteString(`<form class="admin-form" method="post" action="/admin/save/">`)
	writeCsrf(b, csrfToken)
	writeField(b, "title", "Title", post.Title)
	writeField(b, "slug", "Slug", post.Slug)
	writeField(b, "date", "Date (YYYY-MM-DD)", post.Date)
	writeField(b, "tags", "Tags (comma separated)", JoinTags(post.Tags))
	writeField(b, "description", "Description", post.Description)
	writeField(b, "image", "Cover image path", post.Image)
	b.WriteString(`<label>Content<textarea name="content" rows="20">` + esc(post.Content) + `</textarea></label>`)
	checked := ""
	if post.Published {
		checked = " checked"
	}
	b.WriteString(`<label><input type="checkbox" name="published"` + checked + `/> Published</label>`)
	b.WriteString(`<button type="submit">Save</button>`)
	b.WriteString("</form>")
}

func writeField(b *bytes.Buffer, name, label, value string) {
	b.WriteString(`<label>` + esc(label) + `<input type="text" name="` + name + `" value="` + esc(value) + `"/></label>`)
}

func writeCsrf(b *bytes.Buffer, token string) {
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}

// AdminImages renders the uploaded image manager.
func AdminImages(images []Image, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		b.WriteString(`<section class="admin-images"><h1>Images</h1>`)
		b.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		writeCsrf(b, csrfToken)
		b.WriteString(`<input type="file" name="image" accept="image/*"/>`)
		b.WriteString(`<button type="submit">Upload</button></form>`)

		b.WriteString(`<ul class="image-list">`)
		for _, img := range images {
			b.WriteString(`<li><img src="/public/uploads/` + esc(img.Filename) + `" width="120" alt="` + esc(img.OriginalName) + `"/>`)
			b.WriteString(`<code>/public/uploads/` + esc(img.Filename) + `</code> `)
			b.WriteString(esc(strconv.Itoa(img.Width)) + "&times;" + esc(strconv.Itoa(img.Height)))
			b.WriteString(`<button hx-delete="/admin/images/` + esc(img.Filename) +
				`/" hx-confirm="Delete this image?" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}'>Delete</button></li>`)
		}
		b.WriteString("</ul></section>")
	})
}
