package mailer

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()

	blockBreaks = regexp.MustCompile(`(?i)<\s*(br\s*/?|/p|/div|/h[1-6]|/li|/tr)\s*>`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

// PlainText derives a plain-text alternative from an HTML body.
// Block-level closing tags become line breaks; all markup is stripped.
func PlainText(htmlBody string) string {
	s := blockBreaks.ReplaceAllString(htmlBody, "$0\n")
	s = strictPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
}
