// Package builder turns the content directory into the artifact set the
// presentation layer serves: post JSON documents, the list index, the tag
// list, JSON-LD records and the sitemap.
package builder

import (
	"regexp"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog/log"

	"zejzl/sitegen/config"
	"zejzl/sitegen/content"
)

// Builder runs full builds of the site artifacts. Every build loads the
// collection fresh from disk; the watcher is the only cache invalidation.
type Builder struct {
	cfg    config.Config
	policy content.Policy
}

// New creates a Builder for the given site configuration.
func New(cfg config.Config) *Builder {
	if cfg.Unsafe {
		// The policy decision has to be visible in the logs, not implicit.
		log.Warn().Msg("HTML sanitization is disabled; content must stay first-party")
	}
	return &Builder{
		cfg:    cfg,
		policy: content.Policy{Unsafe: cfg.Unsafe},
	}
}

// Build loads the collection and rewrites every artifact.
func (b *Builder) Build() error {
	start := time.Now()

	col, err := content.LoadCollection(b.cfg.ContentDir, b.policy)
	if err != nil {
		return err
	}
	if err := b.writeArtifacts(col); err != nil {
		return err
	}

	log.Info().
		Int("posts", len(col.Posts)).
		Int("tags", len(col.Tags)).
		Dur("elapsed", time.Since(start)).
		Msg("Built site artifacts")
	return nil
}

// Watch rebuilds the artifact set whenever a markdown file in the content
// directory changes. The index, tag list and sitemap all depend on the whole
// collection, so any change triggers a full rebuild.
func (b *Builder) Watch() error {
	log.Debug().Str("path", b.cfg.ContentDir).Msg("Watching content directory for changes")

	// Create a new file watcher
	w := watcher.New()
	w.SetMaxEvents(1)
	// Only watch for write, create, remove, rename and move events
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	// Only watch for markdown files
	r := regexp.MustCompile(`^.*\.md`)
	w.AddFilterHook(watcher.RegexFilterHook(r, false))

	go func() {
		for {
			select {
			case event := <-w.Event:
				log.Debug().Str("path", event.Path).Msg("Content changed, rebuilding")
				if err := b.Build(); err != nil {
					log.Error().Err(err).Msg("Rebuild failed")
				}
			case err := <-w.Error:
				log.Error().Err(err).Msg("Watcher error")
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(b.cfg.ContentDir); err != nil {
		return err
	}

	// Start the watching process - it'll check for changes every 100ms.
	go func() {
		if err := w.Start(time.Millisecond * 100); err != nil {
			log.Error().Err(err).Msg("Failed to start watcher")
		}
	}()
	// Wait for the watcher to start before returning
	w.Wait()
	return nil
}
