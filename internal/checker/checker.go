package checker

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageText extracts the visible body text from rendered HTML, with script,
// style, and noscript content removed and whitespace collapsed to single
// spaces.
func PageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	return normalizeWhitespace(doc.Find("body").Text()), nil
}

// normalizeWhitespace collapses all whitespace runs to single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
