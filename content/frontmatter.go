package content

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog/log"
)

// Frontmatter is the fixed schema of the metadata block. Unrecognized keys in
// a document are ignored; missing keys stay at their zero value and downstream
// code supplies fallbacks.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Published   string   `yaml:"published"`
	Excerpt     string   `yaml:"excerpt"`
	Tags        []string `yaml:"tags"`
	ReadingTime string   `yaml:"readingTime"`
}

// ParseFrontmatter splits a raw document into its metadata record and body.
// A document without a frontmatter block yields a zero record and the whole
// input as body. A block that fails to parse is treated the same way rather
// than failing the document.
func ParseFrontmatter(raw []byte) (Frontmatter, []byte) {
	var fm Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse frontmatter block, treating document as plain markdown")
		return Frontmatter{}, raw
	}
	return fm, body
}
