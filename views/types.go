package views

// Site holds site-wide settings shared with every template.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	Image       string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Post is the core content type rendered by templates.
type Post struct {
	Slug        string
	Title       string
	Date        string // YYYY-MM-DD
	Tags        []string
	Description string
	Image       string // cover/social image path, may be empty
	Link        string
	Content     string // markdown source
	Published   bool
}

// Image is the stored metadata for an uploaded image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
