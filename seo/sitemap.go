// Package seo derives the search-facing artifacts from a built collection:
// the sitemap and the per-page JSON-LD structured data.
package seo

import (
	"encoding/xml"
	"fmt"
	"time"

	"zejzl/sitegen/config"
	"zejzl/sitegen/content"
)

// ChangeFrequency is the sitemap change hint vocabulary this site uses.
type ChangeFrequency string

const (
	Daily   ChangeFrequency = "daily"
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
)

// Entry is one sitemap URL record. Entries are recomputed per build, never
// stored.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        float64
}

// Entries builds the sitemap for the whole site: homepage at priority 1.0,
// blog index at 0.9, each post at 0.7 with its published date as last
// modification. Posts without a date use now.
func Entries(cfg config.Config, c *content.Collection, now time.Time) []Entry {
	entries := []Entry{
		{
			URL:             cfg.BaseURL + "/",
			LastModified:    now,
			ChangeFrequency: Weekly,
			Priority:        1.0,
		},
		{
			URL:             cfg.BaseURL + "/blog",
			LastModified:    now,
			ChangeFrequency: Weekly,
			Priority:        0.9,
		},
	}

	for _, p := range c.Posts {
		lastMod := now
		if p.Published != nil {
			lastMod = *p.Published
		}
		entries = append(entries, Entry{
			URL:             PostURL(cfg, p),
			LastModified:    lastMod,
			ChangeFrequency: Monthly,
			Priority:        0.7,
		})
	}

	return entries
}

// PostURL is the canonical absolute URL of a post.
func PostURL(cfg config.Config, p *content.Post) string {
	return cfg.BaseURL + "/blog/" + p.Slug
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	Xmlns   string    `xml:"xmlns,attr"`
	URLs    []urlNode `xml:"url"`
}

type urlNode struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapXML renders the entries as a sitemaps.org urlset document.
func SitemapXML(entries []Entry) ([]byte, error) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, e := range entries {
		set.URLs = append(set.URLs, urlNode{
			Loc:        e.URL,
			LastMod:    e.LastModified.Format("2006-01-02"),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
