package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Post is the public record for one blog document. List views use Summary
// instead so they never pay for a full render.
type Post struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
	Tags        []string   `json:"tags"`
	Excerpt     string     `json:"excerpt"`
	ReadingTime string     `json:"readingTime"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"contentHtml"`
	Headings    []Heading  `json:"headings"`
}

// Summary is the list-view projection of a Post: no body, no HTML, no TOC.
type Summary struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
	Tags        []string   `json:"tags"`
	Excerpt     string     `json:"excerpt"`
	ReadingTime string     `json:"readingTime"`
}

// Summary returns the list-view projection.
func (p *Post) Summary() Summary {
	return Summary{
		Slug:        p.Slug,
		Title:       p.Title,
		Author:      p.Author,
		Published:   p.Published,
		Tags:        p.Tags,
		Excerpt:     p.Excerpt,
		ReadingTime: p.ReadingTime,
	}
}

const (
	excerptLimit   = 200
	wordsPerMinute = 225
)

var (
	firstH1Line  = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	paragraphCut = regexp.MustCompile(`\r?\n\s*\r?\n`)
)

// Dates authors actually write; tried in order.
var publishedFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
}

// BuildPost assembles the full Post record for one raw document. It is a pure
// transform: every fallback the frontmatter schema allows is resolved here,
// so the result never has an empty title or reading time.
func BuildPost(slug string, raw []byte, policy Policy) *Post {
	fm, body := ParseFrontmatter(raw)

	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Post{
		Slug:        slug,
		Title:       resolveTitle(fm, body, slug),
		Author:      fm.Author,
		Published:   parsePublished(fm.Published),
		Tags:        tags,
		Excerpt:     resolveExcerpt(fm, body),
		ReadingTime: resolveReadingTime(fm, body),
		Content:     string(body),
		ContentHTML: string(Render(body, policy)),
		Headings:    ExtractHeadings(body),
	}
}

// resolveTitle: frontmatter title, else the first level-1 heading in the
// body, else the slug. Never empty.
func resolveTitle(fm Frontmatter, body []byte, slug string) string {
	if fm.Title != "" {
		return fm.Title
	}
	if m := firstH1Line.FindSubmatch(body); m != nil {
		return strings.TrimSpace(string(m[1]))
	}
	return slug
}

// resolveExcerpt: frontmatter excerpt, else the first non-heading paragraph
// truncated to 200 characters with an ellipsis, else empty.
func resolveExcerpt(fm Frontmatter, body []byte) string {
	if fm.Excerpt != "" {
		return fm.Excerpt
	}
	for _, para := range paragraphCut.Split(string(body), -1) {
		p := strings.TrimSpace(para)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		p = strings.Join(strings.Fields(p), " ")
		runes := []rune(p)
		if len(runes) > excerptLimit {
			return string(runes[:excerptLimit]) + "…"
		}
		return p
	}
	return ""
}

// resolveReadingTime: frontmatter override wins, else word count at 225 wpm,
// rounded up, never below one minute.
func resolveReadingTime(fm Frontmatter, body []byte) string {
	if fm.ReadingTime != "" {
		return fm.ReadingTime
	}
	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// parsePublished accepts the date formats authors use; anything else is
// treated as no date rather than an error.
func parsePublished(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, format := range publishedFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}
