// Package sanitize turns untrusted HTML mail bodies into plain text
// that is safe to render in a terminal.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	// Block-level boundaries become newlines before tags are stripped,
	// otherwise adjacent paragraphs run together.
	breakTags   = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</h[1-6]>|</tr>|</blockquote>`)
	hiddenParts = regexp.MustCompile(`(?is)<script\b.*?</script>|<style\b.*?</style>|<head\b.*?</head>`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText flattens an HTML mail body to displayable plain text.
// All markup is removed; block boundaries are preserved as newlines.
func HTMLToText(htmlBody string) string {
	if htmlBody == "" {
		return ""
	}

	s := hiddenParts.ReplaceAllString(htmlBody, "")
	s = breakTags.ReplaceAllString(s, "\n")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	s = strings.Join(lines, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// Body picks the best displayable body for a mail: the flattened HTML
// part when present, the plain part otherwise.
func Body(plain, htmlBody string) string {
	if strings.TrimSpace(htmlBody) != "" {
		return HTMLToText(htmlBody)
	}
	return strings.TrimSpace(plain)
}
