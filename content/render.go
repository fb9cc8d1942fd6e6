package content

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Policy is the trust decision for rendered HTML. Blog content is authored
// in-repo, so sanitization can be switched off, but the caller has to say so.
type Policy struct {
	// Unsafe passes the rendered HTML through untouched.
	Unsafe bool
}

// htmlPolicy is the strict allow-list applied when sanitization is on:
// content markup plus the class/id attributes heading anchors and the
// highlighter need. Scripts, styles, frames and form elements never survive.
var htmlPolicy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "blockquote",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"em", "strong", "del", "code", "pre", "span",
		"a", "img",
	)
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("pre", "code", "span")
	p.AllowAttrs("class", "href").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto", "data")
	p.AllowRelativeURLs(true) // heading self-links are #fragments
	return p
}

// Render converts a markdown body to HTML. Headings get an id from Slugify
// and are wrapped in a self-link anchor; fenced code blocks are highlighted
// with chroma class names. Malformed markdown renders best-effort, it never
// fails. Output is deterministic for identical input.
func Render(body []byte, policy Policy) []byte {
	// Parser instances are single-use, create one per call.
	extensions := parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(body)

	opts := html.RendererOptions{
		Flags:          html.CommonFlags,
		RenderNodeHook: renderHook,
	}
	out := markdown.Render(doc, html.NewRenderer(opts))

	if policy.Unsafe {
		return out
	}
	return htmlPolicy.SanitizeBytes(out)
}

// renderHook overrides heading and code block rendering; everything else
// stays with the default HTML renderer.
func renderHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		if n.IsTitleblock {
			return ast.GoToNext, false
		}
		if entering {
			id := Slugify(HeadingPlainText(headingText(n)))
			fmt.Fprintf(w, "<h%d id=%q>", n.Level, id)
			fmt.Fprintf(w, `<a class="heading-anchor" href="#%s">`, id)
		} else {
			fmt.Fprintf(w, "</a></h%d>\n", n.Level)
		}
		return ast.GoToNext, true
	case *ast.CodeBlock:
		highlightCodeBlock(w, n)
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

// headingText collects the plain text of a heading's inline children.
func headingText(h *ast.Heading) string {
	var sb strings.Builder
	ast.WalkFunc(h, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := node.(type) {
		case *ast.Text:
			sb.Write(t.Literal)
		case *ast.Code:
			sb.Write(t.Literal)
		}
		return ast.GoToNext
	})
	return sb.String()
}

// highlightCodeBlock writes a fenced code block highlighted by chroma.
func highlightCodeBlock(w io.Writer, cb *ast.CodeBlock) {
	lang := ""
	if fields := strings.Fields(string(cb.Info)); len(fields) > 0 {
		lang = fields[0]
	}
	w.Write(highlightedCode(string(cb.Literal), lang))
}

// highlightedCode returns the chroma rendering of source with class-based
// output so styling stays in CSS. An unknown language falls back to the
// plaintext lexer. Chroma output is staged in a buffer and only used when
// formatting fully succeeds; any failure yields a plain escaped block instead,
// never a partial mix of the two.
func highlightedCode(source, lang string) []byte {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if it, err := lexer.Tokenise(nil, source); err == nil {
		var buf bytes.Buffer
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		if err := formatter.Format(&buf, styles.Fallback, it); err == nil {
			return buf.Bytes()
		}
	}

	return []byte(fmt.Sprintf("<pre><code>%s</code></pre>\n", stdhtml.EscapeString(source)))
}
