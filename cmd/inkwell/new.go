package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/okvist/inkwell"
)

//go:embed templates/post.md.tmpl
var templates embed.FS

// postData holds the template variables for a scaffolded post.
type postData struct {
	Title string
	Date  string
}

// runNew scaffolds content/<slug>.md from the post title.
func runNew(title string) error {
	slug := inkwell.Slugify(title)
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from %q", title)
	}

	dir := os.Getenv("CONTENT_DIR")
	if dir == "" {
		dir = "content"
	}
	outPath := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists", outPath)
	}

	content, err := templates.ReadFile("templates/post.md.tmpl")
	if err != nil {
		return fmt.Errorf("read post template: %w", err)
	}
	tmpl, err := template.New("post").Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse post template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	data := postData{
		Title: title,
		Date:  time.Now().Format("2006-01-02"),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("created %s\n", outPath)
	fmt.Println("Set published: true in the front matter when it is ready.")
	return nil
}
