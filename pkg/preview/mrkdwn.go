package preview

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Patterns run over already escaped text, so angle brackets appear as
// entities.
var (
	linkPattern    = regexp.MustCompile(`&lt;((?:https?|mailto):[^|\s]+?)(?:\|(.+?))?&gt;`)
	mentionPattern = regexp.MustCompile(`&lt;([@#!][^|\s]+?)(?:\|(.+?))?&gt;`)
	codePattern    = regexp.MustCompile("`([^`\n]+)`")
	boldPattern    = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicPattern  = regexp.MustCompile(`(^|[\s(>])_([^_\n]+)_`)
	strikePattern  = regexp.MustCompile(`~([^~\n]+)~`)
)

// Mrkdwn converts the platform's mrkdwn dialect to sanitized HTML. Links,
// mentions, *bold*, _italic_, ~strike~ and `code` are supported; everything
// else is shown literally.
func Mrkdwn(text string) string {
	out := html.EscapeString(text)
	out = linkPattern.ReplaceAllStringFunc(out, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		label := parts[2]
		if label == "" {
			label = parts[1]
		}
		return `<a href="` + parts[1] + `">` + label + `</a>`
	})
	out = mentionPattern.ReplaceAllStringFunc(out, func(match string) string {
		parts := mentionPattern.FindStringSubmatch(match)
		label := parts[2]
		if label == "" {
			label = parts[1]
		}
		return `<span class="bk-mention">` + label + `</span>`
	})
	out = codePattern.ReplaceAllString(out, "<code>$1</code>")
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "$1<em>$2</em>")
	out = strikePattern.ReplaceAllString(out, "<del>$1</del>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return sanitize(out)
}

// PlainText escapes text and keeps line breaks.
func PlainText(text string) string {
	return sanitize(strings.ReplaceAll(html.EscapeString(text), "\n", "<br>"))
}

func sanitize(markup string) string {
	return strings.TrimSpace(markupSanitizer().Sanitize(markup))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "del", "code", "br", "span", "a", "img")
		policy.AllowAttrs("class").OnElements("span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("src", "alt").OnElements("img")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireParseableURLs(true)
		policy.RequireNoFollowOnLinks(true)
		markupPolicy = policy
	})
	return markupPolicy
}

// imageHTML renders an img tag. URLs outside the allowed schemes are dropped
// by the sanitizer, leaving an empty string.
func imageHTML(src, alt string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	tag := `<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `">`
	return sanitize(tag)
}

// linkHTML wraps label (already HTML) in an anchor when href is usable.
func linkHTML(href, label string) string {
	if strings.TrimSpace(href) == "" {
		return label
	}
	return sanitize(`<a href="` + html.EscapeString(href) + `">` + label + `</a>`)
}
