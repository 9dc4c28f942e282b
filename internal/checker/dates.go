package checker

import "regexp"

// MaxDateMatches caps how many date mentions are recorded per page, keeping
// spreadsheet cells readable on date-heavy pages (agendas, archives).
const MaxDateMatches = 8

const months = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)`

// datePatterns are tried in order of specificity. Within a page, matches are
// collected per pattern in document order, de-duplicated, and capped.
var datePatterns = []*regexp.Regexp{
	// "March 3-5, 2026", "March 3, 2026", "Sept 14 2026"
	regexp.MustCompile(`(?i)\b` + months + `\.?\s+\d{1,2}(?:\s*[-–]\s*\d{1,2})?(?:,)?\s+\d{4}\b`),
	// "3-5 March 2026", "14 September 2026"
	regexp.MustCompile(`(?i)\b\d{1,2}(?:\s*[-–]\s*\d{1,2})?\s+` + months + `\.?\s+\d{4}\b`),
	// ISO dates: "2026-03-05"
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	// "03/05/2026", "3/5/26"
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	// "4.4.26" (seen on smaller event sites)
	regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`),
}

// ScanDates returns the date mentions found in page text, ordered by pattern
// specificity and then position, de-duplicated, capped at MaxDateMatches.
func ScanDates(text string) []string {
	if text == "" {
		return nil
	}

	var matches []string
	seen := make(map[string]bool)

	for _, pattern := range datePatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			matches = append(matches, m)
			if len(matches) >= MaxDateMatches {
				return matches
			}
		}
	}

	return matches
}
