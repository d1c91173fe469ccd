package inkwell

import "github.com/okvist/inkwell/views"

// Post is the core content type: a blog article stored in SQLite and
// rendered by the views package. The type lives in views so templates can
// consume it without importing the app; it is aliased here for callers.
type Post = views.Post

// Image is the stored metadata for an uploaded image.
type Image = views.Image
