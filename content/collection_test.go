package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCollectionOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "first.md", "---\ntitle: First\npublished: \"2026-02-01\"\n---\nBody.\n")
	writeFile(t, dir, "second.md", "---\ntitle: Second\npublished: \"2026-02-07\"\n---\nBody.\n")
	writeFile(t, dir, "third.md", "---\ntitle: Third\npublished: \"2026-01-15\"\n---\nBody.\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	var slugs []string
	for _, p := range c.Posts {
		slugs = append(slugs, p.Slug)
	}
	want := []string{"second", "first", "third"}
	if len(slugs) != 3 {
		t.Fatalf("got %d posts, want 3", len(slugs))
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Errorf("order = %v, want %v", slugs, want)
			break
		}
	}
}

func TestLoadCollectionOrderingWithUndatedBetween(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-old.md", "---\ntitle: Old\npublished: \"2026-01-01\"\n---\nBody.\n")
	writeFile(t, dir, "b-undated.md", "---\ntitle: Undated\n---\nBody.\n")
	writeFile(t, dir, "c-new.md", "---\ntitle: New\npublished: \"2026-02-01\"\n---\nBody.\n")
	writeFile(t, dir, "d-undated.md", "---\ntitle: Undated Too\n---\nBody.\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	var slugs []string
	for _, p := range c.Posts {
		slugs = append(slugs, p.Slug)
	}
	// Dated posts descending, undated posts after them in enumeration order.
	want := []string{"c-new", "a-old", "b-undated", "d-undated"}
	if len(slugs) != len(want) {
		t.Fatalf("got %d posts, want %d", len(slugs), len(want))
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("order = %v, want %v", slugs, want)
		}
	}
}

func TestLoadCollectionTagSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", "---\ntags: [a, b]\n---\nBody.\n")
	writeFile(t, dir, "two.md", "---\ntags: [b, c]\n---\nBody.\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b", "c"}
	if len(c.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", c.Tags, want)
	}
	for i := range want {
		if c.Tags[i] != want[i] {
			t.Errorf("tags = %v, want %v", c.Tags, want)
			break
		}
	}
}

func TestLoadCollectionIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "Body.\n")
	writeFile(t, dir, "notes.txt", "not markdown")
	writeFile(t, dir, "image.png", "\x89PNG")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	if len(c.Posts) != 1 || c.Posts[0].Slug != "post" {
		t.Errorf("posts = %v", c.Posts)
	}
}

func TestCollectionGet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "exists.md", "Body.\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("exists"); !ok {
		t.Error("expected to find exists")
	}
	if p, ok := c.Get("missing"); ok || p != nil {
		t.Error("missing slug should report absence, not a post")
	}
}

func TestLoadCollectionDuplicateSlugLastWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dup.md", "---\ntitle: Earlier\n---\nBody.\n")
	writeFile(t, dir, "sub/dup.md", "---\ntitle: Later\n---\nBody.\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	if len(c.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(c.Posts))
	}
	if c.Posts[0].Title != "Later" {
		t.Errorf("title = %q, want the last-processed file to win", c.Posts[0].Title)
	}
}

func TestCollectionSummariesExcludeBody(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "p.md", "---\ntitle: P\ntags: [x]\n---\nParagraph.\n\n## Section\n")

	c, err := LoadCollection(dir, Policy{})
	if err != nil {
		t.Fatal(err)
	}

	s := c.Summaries()
	if len(s) != 1 {
		t.Fatalf("got %d summaries", len(s))
	}
	if s[0].Title != "P" || len(s[0].Tags) != 1 {
		t.Errorf("summary = %+v", s[0])
	}
}

func TestLoadCollectionMissingDir(t *testing.T) {
	if _, err := LoadCollection(filepath.Join(t.TempDir(), "nope"), Policy{}); err == nil {
		t.Error("expected an error for a missing content directory")
	}
}
