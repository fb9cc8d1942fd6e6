package seo

import (
	"time"

	"zejzl/sitegen/config"
	"zejzl/sitegen/content"
)

// Record is one JSON-LD document. The shapes are fixed by the schema.org
// vocabulary the presentation layer embeds, so plain maps beat dedicated
// structs here.
type Record map[string]any

const schemaContext = "https://schema.org"

// Organization describes the publisher identity.
func Organization(cfg config.Config) Record {
	return Record{
		"@context":    schemaContext,
		"@type":       "Organization",
		"name":        cfg.SiteName,
		"url":         cfg.BaseURL,
		"description": cfg.SiteDescription,
	}
}

// WebSite describes the site itself.
func WebSite(cfg config.Config) Record {
	return Record{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        cfg.SiteName,
		"url":         cfg.BaseURL,
		"description": cfg.SiteDescription,
	}
}

// Article describes one post. Every field is taken from the Post record as
// built; nothing is re-derived here. Missing dates substitute now so the
// record is always emitted complete.
func Article(cfg config.Config, p *content.Post, now time.Time) Record {
	published := now
	if p.Published != nil {
		published = *p.Published
	}

	author := p.Author
	if author == "" {
		author = cfg.DefaultAuthor
	}

	url := PostURL(cfg, p)
	return Record{
		"@context":      schemaContext,
		"@type":         "Article",
		"headline":      p.Title,
		"description":   p.Excerpt,
		"datePublished": published.Format(time.RFC3339),
		"dateModified":  published.Format(time.RFC3339),
		"author": Record{
			"@type": "Person",
			"name":  author,
		},
		"publisher": Record{
			"@type": "Organization",
			"name":  cfg.SiteName,
			"url":   cfg.BaseURL,
		},
		"url":              url,
		"mainEntityOfPage": url,
	}
}

// Breadcrumb is the fixed Home → Blog → post chain with absolute URLs.
func Breadcrumb(cfg config.Config, p *content.Post) Record {
	return Record{
		"@context": schemaContext,
		"@type":    "BreadcrumbList",
		"itemListElement": []Record{
			{
				"@type":    "ListItem",
				"position": 1,
				"name":     "Home",
				"item":     cfg.BaseURL + "/",
			},
			{
				"@type":    "ListItem",
				"position": 2,
				"name":     "Blog",
				"item":     cfg.BaseURL + "/blog",
			},
			{
				"@type":    "ListItem",
				"position": 3,
				"name":     p.Title,
				"item":     PostURL(cfg, p),
			},
		},
	}
}
