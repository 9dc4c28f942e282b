package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pfrederiksen/conf-verify/internal/conference"
)

func sampleRecords() []*conference.Conference {
	checked := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	return []*conference.Conference{
		{
			Name:         "DevWorld Summit",
			Organization: "DevWorld Foundation",
			Website:      "https://devworldsummit.example",
			Location:     "Amsterdam",
			Audience:     "Software engineers",
			ListedDates:  "March 3-5, 2026",
			Status:       conference.StatusOK,
			HTTPStatus:   200,
			MatchedDates: []string{"March 3-5, 2026", "2025-11-30"},
			CFPLink:      "https://devworldsummit.example/speak/call-for-proposals",
			CFPText:      "Call for Proposals",
			Screenshot:   "screenshots/devworld-summit.png",
			CheckedAt:    checked,
		},
		{
			Name:        "Ghost Conf",
			Website:     "https://ghostconf.example",
			Status:      conference.StatusDead,
			HTTPStatus:  404,
			CheckNotes:  "site returned HTTP 404",
			NeedsReview: true,
			CheckedAt:   checked,
		},
		{
			Name:        "Vanished Summit",
			Website:     "https://vanished.example",
			Status:      conference.StatusUnreachable,
			CheckNotes:  "navigation failed: context deadline exceeded",
			NeedsReview: true,
			CheckedAt:   checked,
		},
	}
}

func sampleSummary() *RunSummary {
	return &RunSummary{
		Input:         "conferences.json",
		Output:        "conference-report.xlsx",
		ScreenshotDir: "screenshots",
		StartedAt:     time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC),
		FinishedAt:    time.Date(2026, 1, 10, 9, 32, 15, 0, time.UTC),
		Total:         3,
		OK:            1,
		Dead:          1,
		Unreachable:   1,
		WithDates:     1,
		WithCFP:       1,
		NeedsReview:   2,
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, sampleRecords(), sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{SheetConferences: false, SheetNeedsReview: false, SheetSummary: false}
	for _, s := range sheets {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for s, present := range want {
		if !present {
			t.Errorf("expected sheet %q in workbook, got %v", s, sheets)
		}
	}
}

func TestWriteConferencesSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, sampleRecords(), sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	checks := []struct {
		cell     string
		expected string
	}{
		{"A1", "Name"},
		{"G1", "Status"},
		{"N1", "Checked At"},
		{"A2", "DevWorld Summit"},
		{"B2", "DevWorld Foundation"},
		{"G2", "ok"},
		{"H2", "200"},
		{"I2", "March 3-5, 2026; 2025-11-30"},
		{"J2", "https://devworldsummit.example/speak/call-for-proposals"},
		{"M2", ""},
		{"N2", "2026-01-10 09:30"},
		{"A3", "Ghost Conf"},
		{"G3", "dead"},
		{"H3", "404"},
		{"L3", "site returned HTTP 404"},
		{"M3", "yes"},
		{"G4", "unreachable"},
		{"H4", ""},
	}

	for _, c := range checks {
		got, err := f.GetCellValue(SheetConferences, c.cell)
		if err != nil {
			t.Fatalf("reading cell %s: %v", c.cell, err)
		}
		if got != c.expected {
			t.Errorf("cell %s = %q, expected %q", c.cell, got, c.expected)
		}
	}
}

func TestWriteNeedsReviewSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, sampleRecords(), sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetNeedsReview)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}

	// Header plus the two flagged records only
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows on %s, got %d", SheetNeedsReview, len(rows))
	}
	if rows[1][0] != "Ghost Conf" {
		t.Errorf("expected first flagged record 'Ghost Conf', got %q", rows[1][0])
	}
	if rows[2][0] != "Vanished Summit" {
		t.Errorf("expected second flagged record 'Vanished Summit', got %q", rows[2][0])
	}
}

func TestWriteSummarySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, sampleRecords(), sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}

	values := make(map[string]string)
	for _, row := range rows {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}

	checks := map[string]string{
		"Conferences checked": "3",
		"Live (ok)":           "1",
		"Dead":                "1",
		"Unreachable":         "1",
		"Flagged for review":  "2",
		"Duration":            "2m15s",
		"Input file":          "conferences.json",
	}
	for label, expected := range checks {
		if got := values[label]; got != expected {
			t.Errorf("summary %q = %q, expected %q", label, got, expected)
		}
	}
}

func TestRunSummaryDuration(t *testing.T) {
	sum := sampleSummary()
	if sum.Duration() != 2*time.Minute+15*time.Second {
		t.Errorf("unexpected duration %s", sum.Duration())
	}
}
