package conference

import (
	"fmt"
	"strings"
	"time"
)

// Status classifies the outcome of visiting a conference website.
type Status string

const (
	// StatusOK means navigation succeeded and the document response was 2xx/3xx.
	StatusOK Status = "ok"
	// StatusDead means the site answered with a 4xx/5xx document response.
	StatusDead Status = "dead"
	// StatusUnreachable means navigation failed or timed out before a usable
	// document response arrived.
	StatusUnreachable Status = "unreachable"
)

// Conference represents one conference listing to verify.
//
// The first block of fields is static input data; the second block is the
// validation outcome filled in place during the run.
type Conference struct {
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Website      string `json:"website"`
	Location     string `json:"location,omitempty"`
	Audience     string `json:"audience,omitempty"`
	ListedDates  string `json:"listed_dates,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Status       Status    `json:"status,omitempty"`
	HTTPStatus   int       `json:"http_status,omitempty"`
	FinalURL     string    `json:"final_url,omitempty"`
	PageTitle    string    `json:"page_title,omitempty"`
	MatchedDates []string  `json:"matched_dates,omitempty"`
	CFPLink      string    `json:"cfp_link,omitempty"`
	CFPText      string    `json:"cfp_text,omitempty"`
	Screenshot   string    `json:"screenshot,omitempty"`
	CheckNotes   string    `json:"check_notes,omitempty"`
	NeedsReview  bool      `json:"needs_review"`
	CheckedAt    time.Time `json:"checked_at,omitempty"`
}

// ClassifyHTTPStatus maps a document response code to a Status.
// A zero code means no document response was observed.
func ClassifyHTTPStatus(code int) Status {
	switch {
	case code >= 200 && code < 400:
		return StatusOK
	case code >= 400:
		return StatusDead
	default:
		return StatusUnreachable
	}
}

// AddNote appends a free-text note to the record's check notes.
func (c *Conference) AddNote(note string) {
	if note == "" {
		return
	}
	if c.CheckNotes == "" {
		c.CheckNotes = note
		return
	}
	c.CheckNotes += "; " + note
}

// Flag marks the record for manual review with an explanatory note.
func (c *Conference) Flag(note string) {
	c.NeedsReview = true
	c.AddNote(note)
}

// ScreenshotName derives a PNG filename from the conference name.
// The name is lowercased and runs of characters outside [a-z0-9] collapse to
// a single dash. If nothing survives sanitization the record index is used.
func ScreenshotName(name string, index int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		s = fmt.Sprintf("conference-%d", index)
	}
	return s + ".png"
}

// UniqueScreenshotName returns ScreenshotName, suffixing the record index
// when two conference names sanitize to the same filename so neither
// screenshot overwrites the other. The chosen name is recorded in taken.
func UniqueScreenshotName(name string, index int, taken map[string]bool) string {
	n := ScreenshotName(name, index)
	if taken[n] {
		n = fmt.Sprintf("%s-%d.png", strings.TrimSuffix(n, ".png"), index)
	}
	taken[n] = true
	return n
}
