package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugHyphenRe = regexp.MustCompile(`\s+`)

	inlineImage = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	inlineLink  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// HeadingPlainText reduces inline markdown in heading text to its visible
// form: links and images keep their label, destinations are dropped. Both the
// renderer and ExtractHeadings pass heading text through here before
// Slugify, so ids computed from raw markdown and from the parsed AST agree.
func HeadingPlainText(text string) string {
	text = inlineImage.ReplaceAllString(text, "$1")
	text = inlineLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// Slugify turns heading text into a URL-fragment-safe id: lower-case, drop
// everything outside [a-z0-9\s-], collapse whitespace runs to one hyphen.
//
// Both the renderer's anchor injection and ExtractHeadings use this function.
// The table-of-contents links only resolve because the two sides share it, so
// do not fork the algorithm.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugHyphenRe.ReplaceAllString(s, "-")
}
