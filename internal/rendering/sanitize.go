// Package rendering maps resume data and resolved template styles into HTML
// section blocks and full preview pages.
package rendering

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// richTextPolicy allows simple formatting only: bold, italic, underline,
// lists, paragraphs, line breaks and plain links. Scripts, event handlers and
// styles are dropped.
func richTextPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "i", "em", "u", "s", "br", "p", "span", "div")
		p.AllowLists()
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(false)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitize strips executable content from user supplied rich text while
// keeping the formatting whitelist.
func Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return richTextPolicy().Sanitize(raw)
}

// SanitizeHTML is Sanitize typed for direct insertion into templates.
func SanitizeHTML(raw string) template.HTML {
	return template.HTML(Sanitize(raw)) //nolint:gosec // sanitized above
}
