package inkwell

import (
	"testing"
	"time"
)

func TestParsePostFile(t *testing.T) {
	data := []byte(`---
title: My First Post
date: 2024-03-10
description: An introduction
image: /public/uploads/intro.jpg
tags:
  - go
  - blog
---
# Hello

Some **content** here.
`)
	post, err := ParsePostFile(data, "my-first-post")
	if err != nil {
		t.Fatalf("ParsePostFile failed: %v", err)
	}
	if post.Title != "My First Post" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Date != "2024-03-10" {
		t.Errorf("Date = %q", post.Date)
	}
	if post.Description != "An introduction" {
		t.Errorf("Description = %q", post.Description)
	}
	if post.Image != "/public/uploads/intro.jpg" {
		t.Errorf("Image = %q", post.Image)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" || post.Tags[1] != "blog" {
		t.Errorf("Tags = %v", post.Tags)
	}
	if post.Slug != "my-first-post" {
		t.Errorf("Slug = %q", post.Slug)
	}
	if !post.Published {
		t.Error("post should default to published")
	}
	if post.Content != "# Hello\n\nSome **content** here." {
		t.Errorf("Content = %q", post.Content)
	}
}

func TestParsePostFileSlugOverride(t *testing.T) {
	data := []byte("---\ntitle: T\nslug: custom-slug\n---\nbody")
	post, err := ParsePostFile(data, "file-name")
	if err != nil {
		t.Fatalf("ParsePostFile failed: %v", err)
	}
	if post.Slug != "custom-slug" {
		t.Errorf("Slug = %q, want custom-slug", post.Slug)
	}
	if post.Link != "/blog/custom-slug" {
		t.Errorf("Link = %q", post.Link)
	}
}

func TestParsePostFileDraft(t *testing.T) {
	data := []byte("---\ntitle: Draft\npublished: false\n---\nbody")
	post, err := ParsePostFile(data, "draft")
	if err != nil {
		t.Fatalf("ParsePostFile failed: %v", err)
	}
	if post.Published {
		t.Error("published: false should produce a draft")
	}
}

func TestParsePostFileDefaultsDateToToday(t *testing.T) {
	data := []byte("---\ntitle: Undated\n---\nbody")
	post, err := ParsePostFile(data, "undated")
	if err != nil {
		t.Fatalf("ParsePostFile failed: %v", err)
	}
	if post.Date != time.Now().Format("2006-01-02") {
		t.Errorf("Date = %q, want today", post.Date)
	}
}

func TestParsePostFileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no front matter", "# Just markdown"},
		{"unclosed front matter", "---\ntitle: T\n"},
		{"missing title", "---\ndate: 2024-01-01\n---\nbody"},
		{"bad date", "---\ntitle: T\ndate: March 10\n---\nbody"},
		{"bad yaml", "---\ntitle: [unclosed\n---\nbody"},
	}
	for _, tt := range tests {
		if _, err := ParsePostFile([]byte(tt.data), "x"); err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
		}
	}
}

func TestSplitFrontMatterClosedAtEOF(t *testing.T) {
	header, body, err := splitFrontMatter([]byte("---\ntitle: T\n---"))
	if err != nil {
		t.Fatalf("splitFrontMatter failed: %v", err)
	}
	if string(header) != "title: T" {
		t.Errorf("header = %q", header)
	}
	if len(body) != 0 {
		t.Errorf("body = %q, want empty", body)
	}
}
