package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zejzl/sitegen/config"
)

func testBuild(t *testing.T) (string, *Builder) {
	t.Helper()

	contentDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "build")

	posts := map[string]string{
		"agents-overview.md": "---\ntitle: Agents Overview\npublished: \"2026-02-06\"\ntags: [agents, architecture]\n---\nHow the agent mesh fits together.\n\n## Message Bus\n\nDetails.\n",
		"memory-design.md":   "---\ntitle: Memory Design\npublished: \"2026-02-10\"\ntags: [agents, memory]\n---\nShared memory notes.\n",
	}
	for name, data := range posts {
		if err := os.WriteFile(filepath.Join(contentDir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Config{
		ContentDir: contentDir,
		OutputDir:  outDir,
	}
	cfg.Defaults()

	b := New(cfg)
	if err := b.Build(); err != nil {
		t.Fatal(err)
	}
	return outDir, b
}

func TestBuildWritesIndex(t *testing.T) {
	out, _ := testBuild(t)

	data, err := os.ReadFile(filepath.Join(out, "index.json"))
	if err != nil {
		t.Fatal(err)
	}

	var index struct {
		Posts []struct {
			Slug        string `json:"slug"`
			Title       string `json:"title"`
			ContentHTML string `json:"contentHtml"`
		} `json:"posts"`
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatal(err)
	}

	if len(index.Posts) != 2 {
		t.Fatalf("index has %d posts, want 2", len(index.Posts))
	}
	// Sorted by published date descending.
	if index.Posts[0].Slug != "memory-design" {
		t.Errorf("first post = %q", index.Posts[0].Slug)
	}
	// List view must not carry rendered HTML.
	if index.Posts[0].ContentHTML != "" {
		t.Error("index entries should not include contentHtml")
	}

	wantTags := []string{"agents", "architecture", "memory"}
	if len(index.Tags) != len(wantTags) {
		t.Fatalf("tags = %v", index.Tags)
	}
	for i := range wantTags {
		if index.Tags[i] != wantTags[i] {
			t.Errorf("tags = %v, want %v", index.Tags, wantTags)
			break
		}
	}
}

func TestBuildWritesPostDetail(t *testing.T) {
	out, _ := testBuild(t)

	data, err := os.ReadFile(filepath.Join(out, "posts", "agents-overview.json"))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Slug        string `json:"slug"`
		ContentHTML string `json:"contentHtml"`
		Headings    []struct {
			ID string `json:"id"`
		} `json:"headings"`
		StructuredData struct {
			Article    map[string]any `json:"article"`
			Breadcrumb map[string]any `json:"breadcrumb"`
		} `json:"structuredData"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Slug != "agents-overview" {
		t.Errorf("slug = %q", doc.Slug)
	}
	if !strings.Contains(doc.ContentHTML, `id="message-bus"`) {
		t.Errorf("contentHtml lacks heading anchor: %s", doc.ContentHTML)
	}
	if len(doc.Headings) != 1 || doc.Headings[0].ID != "message-bus" {
		t.Errorf("headings = %v", doc.Headings)
	}
	if doc.StructuredData.Article["@type"] != "Article" {
		t.Errorf("article record = %v", doc.StructuredData.Article)
	}
	if doc.StructuredData.Breadcrumb["@type"] != "BreadcrumbList" {
		t.Errorf("breadcrumb record = %v", doc.StructuredData.Breadcrumb)
	}
}

func TestBuildWritesSitemapAndSite(t *testing.T) {
	out, _ := testBuild(t)

	sitemap, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sitemap), "<urlset") {
		t.Errorf("sitemap.xml missing urlset: %s", sitemap)
	}
	if !strings.Contains(string(sitemap), "/blog/memory-design</loc>") {
		t.Errorf("sitemap.xml missing post url: %s", sitemap)
	}

	var site struct {
		Organization map[string]any `json:"organization"`
		WebSite      map[string]any `json:"website"`
	}
	data, err := os.ReadFile(filepath.Join(out, "site.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &site); err != nil {
		t.Fatal(err)
	}
	if site.Organization["@type"] != "Organization" || site.WebSite["@type"] != "WebSite" {
		t.Errorf("site.json records = %+v", site)
	}
}

func TestRebuildReplacesArtifacts(t *testing.T) {
	out, b := testBuild(t)

	stale := filepath.Join(out, "posts", "stale.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := b.Build(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("rebuild should reset the output directory")
	}
}
