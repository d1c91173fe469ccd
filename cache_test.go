package inkwell

import (
	"errors"
	"testing"
	"time"
)

func TestPostCacheServesAndInvalidates(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Minute)

	if err := s.SavePost(Post{Slug: "one", Title: "One", Date: "2024-01-01", Tags: []string{"go"}, Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	// A write behind the cache's back is invisible until Invalidate.
	if err := s.SavePost(Post{Slug: "two", Title: "Two", Date: "2024-01-02", Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, _ = c.ListPosts("")
	if len(posts) != 1 {
		t.Errorf("cache should still serve 1 post, got %d", len(posts))
	}

	c.Invalidate()
	posts, _ = c.ListPosts("")
	if len(posts) != 2 {
		t.Errorf("after invalidate got %d posts, want 2", len(posts))
	}
}

func TestPostCacheTagFilter(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Minute)

	for _, p := range []Post{
		{Slug: "a", Title: "A", Date: "2024-01-01", Tags: []string{"go"}, Published: true},
		{Slug: "b", Title: "B", Date: "2024-01-02", Tags: []string{"web"}, Published: true},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	posts, err := c.ListPosts("GO")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("ListPosts(GO) = %v", posts)
	}
}

func TestPostCacheGetPost(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Minute)

	if err := s.SavePost(Post{Slug: "hit", Title: "Hit", Date: "2024-01-01", Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := c.GetPost("hit"); err != nil {
		t.Errorf("GetPost(hit) failed: %v", err)
	}
	if _, err := c.GetPost("miss"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost(miss) = %v, want ErrNotFound", err)
	}
}
