// Package conv renders persona replies, which are written in markdown, for
// the different transports.
package conv

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()

	headingOpen  = regexp.MustCompile(`<h[1-6][^>]*>`)
	headingClose = regexp.MustCompile(`</h[1-6]>`)
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

func render(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return markdown.Render(p.Parse(md), renderer)
}

// MarkdownToTelegramHTML renders md with the subset of HTML Telegram accepts.
// Headings, such as the section titles of structured replies, become bold.
func MarkdownToTelegramHTML(md []byte) string {
	unsafeHTML := render(md)
	unsafeHTML = headingOpen.ReplaceAll(unsafeHTML, []byte("<b>"))
	unsafeHTML = headingClose.ReplaceAll(unsafeHTML, []byte("</b>"))

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}

// MarkdownToPlain renders md as terminal friendly plain text. Links keep
// their targets. On conversion failure the input is returned unchanged.
func MarkdownToPlain(md []byte) string {
	text, err := html2text.FromString(string(render(md)), html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return string(md)
	}
	return strings.TrimSpace(text)
}
