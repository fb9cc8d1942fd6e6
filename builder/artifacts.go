package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zejzl/sitegen/content"
	"zejzl/sitegen/seo"
)

// indexDoc is the blog index artifact: list-view records plus the global tag
// list, no post bodies.
type indexDoc struct {
	Posts []content.Summary `json:"posts"`
	Tags  []string          `json:"tags"`
}

// siteDoc carries the site-level structured data.
type siteDoc struct {
	Organization seo.Record `json:"organization"`
	WebSite      seo.Record `json:"website"`
}

// postDoc is the detail artifact for one post: the full record plus its
// structured data.
type postDoc struct {
	*content.Post
	StructuredData struct {
		Article    seo.Record `json:"article"`
		Breadcrumb seo.Record `json:"breadcrumb"`
	} `json:"structuredData"`
}

// writeArtifacts resets the output directory and writes the full artifact
// set for the given collection.
func (b *Builder) writeArtifacts(col *content.Collection) error {
	out := b.cfg.OutputDir
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("reset output directory %s: %w", out, err)
	}
	if err := os.MkdirAll(filepath.Join(out, "posts"), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", out, err)
	}

	now := time.Now().UTC()

	if err := writeJSON(filepath.Join(out, "index.json"), indexDoc{
		Posts: col.Summaries(),
		Tags:  col.Tags,
	}); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(out, "tags.json"), col.Tags); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(out, "site.json"), siteDoc{
		Organization: seo.Organization(b.cfg),
		WebSite:      seo.WebSite(b.cfg),
	}); err != nil {
		return err
	}

	for _, p := range col.Posts {
		doc := postDoc{Post: p}
		doc.StructuredData.Article = seo.Article(b.cfg, p, now)
		doc.StructuredData.Breadcrumb = seo.Breadcrumb(b.cfg, p)
		if err := writeJSON(filepath.Join(out, "posts", p.Slug+".json"), doc); err != nil {
			return err
		}
	}

	sitemap, err := seo.SitemapXML(seo.Entries(b.cfg, col, now))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, "sitemap.xml"), sitemap, 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
