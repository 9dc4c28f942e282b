package checker

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a matched call-for-proposals link.
type Link struct {
	Text string
	URL  string
}

// cfpKeywords are matched case-insensitively against anchor text and href.
// The multi-word phrases come first only for readability; the winner is the
// first anchor in document order that matches any keyword.
var cfpKeywords = []string{
	"call for proposals",
	"call for papers",
	"call for speakers",
	"submit a talk",
	"submit a proposal",
	"become a speaker",
	"speaker application",
	"cfp",
}

// FindCFPLink scans the anchors of rendered HTML in document order and
// returns the first one whose text or href mentions a CFP keyword. Relative
// hrefs resolve against baseURL. Returns nil when no anchor matches.
func FindCFPLink(html, baseURL string) (*Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var found *Link
	doc.Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if skipHref(href) {
			return true
		}

		text := normalizeWhitespace(sel.Text())
		haystack := strings.ToLower(text + " " + href)
		for _, kw := range cfpKeywords {
			if strings.Contains(haystack, kw) {
				found = &Link{
					Text: text,
					URL:  resolveHref(baseURL, href),
				}
				return false
			}
		}
		return true
	})

	return found, nil
}

// skipHref filters out anchors that cannot lead to a CFP page.
func skipHref(href string) bool {
	if href == "" || href == "#" {
		return true
	}
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:")
}

// resolveHref resolves href against base, falling back to href verbatim when
// either side fails to parse.
func resolveHref(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
