// Package filter narrows the set of conferences a run verifies.
//
// A filter expression is a comma-separated list of terms. A conference
// matches when any term appears (case-insensitive substring) in its name,
// organization, location, or audience. An empty expression matches everything.
//
// Example usage:
//
//	f := filter.New("devops, berlin")
//	subset := f.Apply(conferences)
package filter

import (
	"strings"

	"github.com/pfrederiksen/conf-verify/internal/conference"
)

// Filter holds the lowercased match terms.
type Filter struct {
	terms []string
}

// New parses a comma-separated filter expression. Blank terms are dropped.
func New(expr string) *Filter {
	f := &Filter{}
	for _, t := range strings.Split(expr, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			f.terms = append(f.terms, t)
		}
	}
	return f
}

// Empty reports whether the filter has no active terms.
func (f *Filter) Empty() bool {
	return len(f.terms) == 0
}

// Match reports whether the conference matches any filter term.
// An empty filter matches everything.
func (f *Filter) Match(c *conference.Conference) bool {
	if f.Empty() {
		return true
	}

	haystack := strings.ToLower(strings.Join([]string{
		c.Name, c.Organization, c.Location, c.Audience,
	}, " "))

	for _, term := range f.terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

// Apply returns the subset of conferences matching the filter.
func (f *Filter) Apply(list []*conference.Conference) []*conference.Conference {
	if f.Empty() {
		return list
	}

	matched := make([]*conference.Conference, 0, len(list))
	for _, c := range list {
		if f.Match(c) {
			matched = append(matched, c)
		}
	}
	return matched
}
