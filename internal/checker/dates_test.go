package checker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestScanDates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "month first with range",
			text:     "Join us March 3-5, 2026 in Amsterdam",
			expected: []string{"March 3-5, 2026"},
		},
		{
			name:     "month first single day",
			text:     "Speaker notifications: December 15, 2025",
			expected: []string{"December 15, 2025"},
		},
		{
			name:     "day first",
			text:     "The community day follows on 6 March 2026.",
			expected: []string{"6 March 2026"},
		},
		{
			name:     "short month name",
			text:     "Workshops run Sept 14 2026 only",
			expected: []string{"Sept 14 2026"},
		},
		{
			name:     "iso date",
			text:     "Proposal deadline: 2025-11-30",
			expected: []string{"2025-11-30"},
		},
		{
			name:     "slash date",
			text:     "Early bird until 01/15/2026",
			expected: []string{"01/15/2026"},
		},
		{
			name:     "dotted date",
			text:     "Save the date 4.4.26",
			expected: []string{"4.4.26"},
		},
		{
			name:     "duplicates collapse",
			text:     "March 3-5, 2026 ... see you March 3-5, 2026!",
			expected: []string{"March 3-5, 2026"},
		},
		{
			name:     "no dates",
			text:     "A conference about things, time and place to be announced",
			expected: nil,
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name: "pattern precedence ordering",
			text: "Deadline 2025-11-30, event March 3-5, 2026",
			// Month-name matches come before ISO matches.
			expected: []string{"March 3-5, 2026", "2025-11-30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanDates(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ScanDates(%q) = %v, expected %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestScanDatesCap(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= MaxDateMatches+4; i++ {
		fmt.Fprintf(&b, "session on 2026-03-%02d, ", i)
	}

	got := ScanDates(b.String())
	if len(got) != MaxDateMatches {
		t.Errorf("expected matches to be capped at %d, got %d", MaxDateMatches, len(got))
	}
}
