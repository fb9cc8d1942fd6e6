package content

import (
	"regexp"
	"strings"
)

// Heading is one table-of-contents entry.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Level 2 and 3 only. The document title (level 1) and anything deeper than
// level 3 stay out of the table of contents.
var tocHeadingLine = regexp.MustCompile(`^(#{2,3})\s+(.+)$`)

// ExtractHeadings scans a raw markdown body for table-of-contents headings.
// It is a pure line scan over the pre-render text; ids come from the same
// Slugify the renderer uses, so every id here resolves to a rendered anchor.
// Repeated heading texts are not deduplicated and yield duplicate ids.
func ExtractHeadings(body []byte) []Heading {
	var headings []Heading

	fenceMark := ""
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			mark := trimmed[:3]
			switch {
			case fenceMark == "":
				fenceMark = mark
			case fenceMark == mark:
				fenceMark = ""
			}
			// A mismatched marker inside an open fence is literal content.
			continue
		}
		if fenceMark != "" {
			continue
		}

		m := tocHeadingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := HeadingPlainText(m[2])
		if text == "" {
			continue
		}
		headings = append(headings, Heading{
			ID:    Slugify(text),
			Text:  text,
			Level: len(m[1]),
		})
	}

	return headings
}
