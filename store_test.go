package inkwell

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_blog.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:        "test-post",
		Title:       "Test Post",
		Date:        "2024-01-15",
		Tags:        []string{"go", "testing"},
		Description: "A test post description",
		Image:       "/public/uploads/cover.jpg",
		Content:     "# Test Content\n\nThis is test content.",
		Published:   true,
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Description != post.Description {
		t.Errorf("Description = %q, want %q", got.Description, post.Description)
	}
	if got.Image != post.Image {
		t.Errorf("Image = %q, want %q", got.Image, post.Image)
	}
	if got.Content != post.Content {
		t.Errorf("Content = %q, want %q", got.Content, post.Content)
	}
	if got.Link != "/blog/test-post" {
		t.Errorf("Link = %q, want %q", got.Link, "/blog/test-post")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "testing" {
		t.Errorf("Tags = %v, want [go testing]", got.Tags)
	}
}

func TestGetPostHidesDrafts(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{Slug: "draft", Title: "Draft", Date: "2024-01-01", Published: false}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := s.GetPost("draft"); err == nil {
		t.Error("GetPost should not return drafts")
	}
	got, err := s.GetPostAny("draft")
	if err != nil {
		t.Fatalf("GetPostAny failed: %v", err)
	}
	if got.Published {
		t.Error("draft should not be marked published")
	}
}

func TestListPostsByTag(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"go"}, Published: true},
		{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"web"}, Published: true},
		{Slug: "c", Title: "C", Date: "2024-01-03", Tags: []string{"Go", "web"}, Published: true},
	}
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost(%s) failed: %v", p.Slug, err)
		}
	}

	got, err := s.ListPosts("go")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPosts(go) returned %d posts, want 2", len(got))
	}
	// date descending
	if got[0].Slug != "c" || got[1].Slug != "a" {
		t.Errorf("ListPosts(go) order = [%s %s], want [c a]", got[0].Slug, got[1].Slug)
	}
}

func TestListTagsSortedDeduplicated(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []Post{
		{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"Web", "go"}, Published: true},
		{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"go"}, Published: true},
		{Slug: "d", Title: "D", Date: "2024-01-03", Tags: []string{"draft-only"}, Published: false},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost(%s) failed: %v", p.Slug, err)
		}
	}

	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("ListTags = %v, want [go web]", tags)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{Slug: "gone", Title: "Gone", Date: "2024-01-01", Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.DeletePost("gone"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostAny("gone"); err == nil {
		t.Error("deleted post still present")
	}
}

func TestSaveAndListImages(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "cover.jpg",
		OriginalName: "Cover Photo.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2024-01-15T10:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "cover.jpg" || images[0].Width != 800 {
		t.Errorf("ListImages = %+v", images)
	}

	if err := s.DeleteImage("cover.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("image not deleted: %+v", images)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{",go,web,", 2},
		{"go", 1},
		{"", 0},
		{",,", 0},
	}
	for _, tt := range tests {
		got := ParseTags(tt.input)
		if len(got) != tt.want {
			t.Errorf("ParseTags(%q) = %v, want %d tags", tt.input, got, tt.want)
		}
	}
}
