// Package content implements the static content pipeline: frontmatter
// parsing, markdown rendering with sanitization, heading extraction, derived
// post metadata and the collection index over a content directory.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Collection is the full ordered set of posts plus the derived global tag
// list. It is rebuilt from the filesystem on demand; nothing is cached here.
type Collection struct {
	Posts []*Post
	Tags  []string

	bySlug map[string]*Post
}

// LoadCollection walks dir for markdown files and builds the sorted
// collection. Non-markdown files are ignored. A file that cannot be read is
// logged and skipped; only a failure to enumerate the directory itself is an
// error. Posts are sorted by published date descending; posts without a date
// sink to the end, keeping their relative enumeration order, which follows
// the filesystem and is implementation-defined.
func LoadCollection(dir string, policy Policy) (*Collection, error) {
	paths, err := markdownFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("enumerate content directory %s: %w", dir, err)
	}

	c := &Collection{bySlug: make(map[string]*Post)}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable content file")
			continue
		}

		slug := strings.TrimSuffix(filepath.Base(path), ".md")
		if prev, ok := c.bySlug[slug]; ok {
			// Last-processed wins, but never silently.
			log.Error().Str("slug", slug).Str("path", path).Msg("Duplicate slug, replacing earlier post")
			for i, p := range c.Posts {
				if p == prev {
					c.Posts = append(c.Posts[:i], c.Posts[i+1:]...)
					break
				}
			}
		}

		post := BuildPost(slug, raw, policy)
		c.Posts = append(c.Posts, post)
		c.bySlug[slug] = post
		log.Debug().Str("slug", slug).Str("path", path).Msg("Loaded post")
	}

	sort.SliceStable(c.Posts, func(i, j int) bool {
		pi, pj := c.Posts[i].Published, c.Posts[j].Published
		if pi == nil {
			return false // undated sorts after any dated post
		}
		if pj == nil {
			return true
		}
		return pi.After(*pj)
	})

	c.Tags = collectTags(c.Posts)
	return c, nil
}

// Get looks a post up by slug. Absence is a result, not an error.
func (c *Collection) Get(slug string) (*Post, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

// Summaries returns the list-view records in collection order.
func (c *Collection) Summaries() []Summary {
	summaries := make([]Summary, 0, len(c.Posts))
	for _, p := range c.Posts {
		summaries = append(summaries, p.Summary())
	}
	return summaries
}

// markdownFiles walks the content directory and returns every .md path.
// Unreadable subpaths are logged and the walk continues elsewhere.
func markdownFiles(dir string) ([]string, error) {
	paths := []string{}
	err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Error().Err(err).Str("path", path).Msg("Failed to access path")
			return nil // continue walking elsewhere
		}
		if f.IsDir() {
			return nil // not a file. ignore.
		}

		if filepath.Ext(path) == ".md" {
			paths = append(paths, path)
			log.Debug().Str("path", path).Msg("Found file")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// collectTags unions every post's tags, deduplicated and sorted ascending so
// display order is reproducible.
func collectTags(posts []*Post) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}
