// Package config holds the site-wide settings the pipeline needs: where the
// content lives, where artifacts go, and the identity fields (base URL, site
// name, default author) baked into sitemap and structured-data output.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is loaded from an optional YAML file and finished with defaults.
type Config struct {
	BaseURL         string `yaml:"baseURL"`
	SiteName        string `yaml:"siteName"`
	SiteDescription string `yaml:"siteDescription"`
	DefaultAuthor   string `yaml:"defaultAuthor"`
	ContentDir      string `yaml:"contentDir"`
	OutputDir       string `yaml:"outputDir"`

	// Unsafe disables HTML sanitization of rendered markdown. Content on this
	// site is first-party, but the caller has to opt out explicitly.
	Unsafe bool `yaml:"unsafe"`
}

// Load reads the config file at path. A missing file is not an error: the
// zero Config is returned and Defaults fills it in. A file that exists but
// fails to parse is an error.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Defaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.Defaults()
	return cfg, nil
}

// Defaults fills in any field left empty by the config file.
func (c *Config) Defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://zejzl.net"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.SiteName == "" {
		c.SiteName = "Zejzl"
	}
	if c.SiteDescription == "" {
		c.SiteDescription = "Notes on multi-agent AI systems"
	}
	if c.DefaultAuthor == "" {
		c.DefaultAuthor = "Neo & Zejzl"
	}
	if c.ContentDir == "" {
		c.ContentDir = "./content/blog"
	}
	if c.OutputDir == "" {
		c.OutputDir = "./site-build"
	}
}
