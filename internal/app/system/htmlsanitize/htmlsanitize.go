// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans admin-authored rich content before it is
// written to the document store. News and event bodies may carry
// formatted HTML, code blocks and embedded videos or calendars; anything
// that could run script is removed.
package htmlsanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// embedSources are the only iframe origins kept in content.
var embedSources = regexp.MustCompile(
	`^https://(www\.youtube\.com/embed/|www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/|calendar\.google\.com/calendar/embed)`)

var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Tables, code highlighting and figure layout rely on class names.
	p.AllowAttrs("class").OnElements(
		"table", "thead", "tbody", "tr", "th", "td",
		"pre", "code", "span", "div", "p", "figure", "img",
	)
	p.AllowElements("figure", "figcaption")

	p.AllowElements("iframe")
	p.AllowAttrs("src").Matching(embedSources).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("iframe")
	p.AllowAttrs("frameborder").Matching(bluemonday.Integer).OnElements("iframe")
	p.AllowAttrs("allowfullscreen", "title").OnElements("iframe")

	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize returns s with every unsafe element and attribute removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// PlainText strips all markup from s, leaving only text. Used for
// excerpts and titles.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}

// IsPlainText reports whether s looks like text rather than markup. A lone
// "<" or ">" (as in "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML wraps plain text in paragraphs, one per blank-line
// separated block, with single newlines becoming <br>.
func PlainTextToHTML(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, block := range strings.Split(s, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(block), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// PrepareContent turns an admin-submitted body into storable HTML: plain
// text is converted to paragraphs, markup is sanitized.
func PrepareContent(s string) string {
	if IsPlainText(s) {
		return PlainTextToHTML(s)
	}
	return Sanitize(s)
}
