package inkwell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// frontMatter mirrors the YAML header of a content file.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	Slug        string   `yaml:"slug"`
	Published   *bool    `yaml:"published"`
}

var (
	fmOpen  = []byte("---\n")
	fmClose = []byte("\n---\n")
)

// splitFrontMatter separates the YAML header from the markdown body.
// The file must start with "---\n"; the header ends at the next "\n---\n".
func splitFrontMatter(content []byte) (header, body []byte, err error) {
	if !bytes.HasPrefix(content, fmOpen) {
		return nil, nil, fmt.Errorf("missing front matter delimiter")
	}
	rest := content[len(fmOpen):]
	idx := bytes.Index(rest, fmClose)
	if idx < 0 {
		// Allow a file that is all front matter, closed at EOF.
		if trimmed, ok := bytes.CutSuffix(rest, []byte("\n---")); ok {
			return trimmed, nil, nil
		}
		return nil, nil, fmt.Errorf("missing closing front matter delimiter")
	}
	return rest[:idx], rest[idx+len(fmClose):], nil
}

// ParsePostFile turns the raw bytes of a content/*.md file into a Post.
// defaultSlug (conventionally the file base name) is used unless the front
// matter overrides it. Posts default to published; set "published: false"
// for drafts.
func ParsePostFile(data []byte, defaultSlug string) (Post, error) {
	header, body, err := splitFrontMatter(data)
	if err != nil {
		return Post{}, err
	}
	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return Post{}, fmt.Errorf("parse front matter: %w", err)
	}
	if fm.Title == "" {
		return Post{}, fmt.Errorf("front matter has no title")
	}

	slug := fm.Slug
	if slug == "" {
		slug = defaultSlug
	}
	date := fm.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return Post{}, fmt.Errorf("invalid date %q: %w", fm.Date, err)
	}
	published := true
	if fm.Published != nil {
		published = *fm.Published
	}

	return Post{
		Slug:        slug,
		Title:       fm.Title,
		Date:        date,
		Tags:        FilterEmpty(fm.Tags),
		Description: fm.Description,
		Image:       fm.Image,
		Link:        "/blog/" + slug,
		Content:     strings.TrimRight(string(body), "\n"),
		Published:   published,
	}, nil
}

// LoadContent syncs every markdown file under dir into the store. A file
// with broken front matter is skipped with a warning; content loading never
// takes the site down. A missing directory is not an error.
func (a *App) LoadContent(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read content dir: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		slug := Slugify(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		post, err := ParsePostFile(data, slug)
		if err != nil {
			a.Log.Warn().Err(err).Str("file", path).Msg("skipping content file")
			continue
		}
		if err := a.Store.SavePost(post); err != nil {
			return fmt.Errorf("save %s: %w", post.Slug, err)
		}
		loaded++
	}
	if loaded > 0 {
		a.Cache.Invalidate()
	}
	a.Log.Info().Int("posts", loaded).Str("dir", dir).Msg("content loaded")
	return nil
}
