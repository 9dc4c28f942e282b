// Package config loads and validates the conference input file.
//
// The input is a JSON array of conference objects. Name and website are
// required; the website must be an http or https URL. Validation errors
// identify the offending entry by index and name so the operator can fix the
// file without guessing.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/conf-verify/internal/conference"
)

// ValidationError describes an invalid entry in the input file.
type ValidationError struct {
	Index  int
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("entry %d (%s): %s", e.Index, e.Name, e.Reason)
}

// Load reads the conference list from path and validates every entry.
// Any unreadable file, malformed JSON, or invalid entry is an error; the
// caller treats these as fatal.
func Load(path string) ([]*conference.Conference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var conferences []*conference.Conference
	if err := json.Unmarshal(data, &conferences); err != nil {
		return nil, fmt.Errorf("parsing input file: %w", err)
	}

	if len(conferences) == 0 {
		return nil, fmt.Errorf("input file %s contains no conferences", path)
	}

	for i, c := range conferences {
		if err := validate(i, c); err != nil {
			return nil, err
		}
	}

	return conferences, nil
}

// validate checks the required static fields of a single entry.
func validate(index int, c *conference.Conference) error {
	if c == nil {
		return &ValidationError{Index: index, Reason: "entry is null"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Index: index, Reason: "name is required"}
	}
	website := strings.TrimSpace(c.Website)
	if website == "" {
		return &ValidationError{Index: index, Name: c.Name, Reason: "website is required"}
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		return &ValidationError{Index: index, Name: c.Name, Reason: "website must start with http:// or https://"}
	}
	c.Website = website
	return nil
}
