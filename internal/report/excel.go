// Package report compiles verification results into a multi-sheet Excel
// workbook: all conferences, the needs-review subset, and a run summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pfrederiksen/conf-verify/internal/conference"
)

// Sheet names in the generated workbook.
const (
	SheetConferences = "Conferences"
	SheetNeedsReview = "Needs Review"
	SheetSummary     = "Summary"
)

// columns is the fixed column order of the record sheets.
var columns = []string{
	"Name", "Organization", "Website", "Location", "Audience", "Listed Dates",
	"Status", "HTTP", "Dates Found", "CFP Link", "Screenshot", "Notes",
	"Needs Review", "Checked At",
}

// RunSummary carries run-level stats for the Summary sheet and console output.
type RunSummary struct {
	Input         string    `json:"input"`
	Output        string    `json:"output"`
	ScreenshotDir string    `json:"screenshot_dir,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Total         int       `json:"total"`
	OK            int       `json:"ok"`
	Dead          int       `json:"dead"`
	Unreachable   int       `json:"unreachable"`
	WithDates     int       `json:"with_dates"`
	WithCFP       int       `json:"with_cfp"`
	NeedsReview   int       `json:"needs_review"`
}

// Duration returns the wall-clock duration of the run.
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// styles holds the style IDs used across sheets.
type styles struct {
	header      int
	statusOK    int
	statusDead  int
	statusUnrch int
	reviewRow   int
}

// Write builds the workbook and saves it to path.
func Write(path string, records []*conference.Conference, sum *RunSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetConferences); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	st, err := buildStyles(f)
	if err != nil {
		return fmt.Errorf("creating styles: %w", err)
	}

	if err := writeRecordSheet(f, SheetConferences, records, st); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetConferences, err)
	}

	var flagged []*conference.Conference
	for _, c := range records {
		if c.NeedsReview {
			flagged = append(flagged, c)
		}
	}
	if _, err := f.NewSheet(SheetNeedsReview); err != nil {
		return fmt.Errorf("creating %s sheet: %w", SheetNeedsReview, err)
	}
	if err := writeRecordSheet(f, SheetNeedsReview, flagged, st); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetNeedsReview, err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating %s sheet: %w", SheetSummary, err)
	}
	if err := writeSummarySheet(f, sum, st); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetSummary, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// buildStyles registers the workbook styles: bold header, status fills
// (green ok, red dead, orange unreachable), and the light yellow tint for
// rows flagged for review.
func buildStyles(f *excelize.File) (*styles, error) {
	st := &styles{}
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}
	st.statusOK, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}},
	})
	if err != nil {
		return nil, err
	}
	st.statusDead, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	})
	if err != nil {
		return nil, err
	}
	st.statusUnrch, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FCE4D6"}},
	})
	if err != nil {
		return nil, err
	}
	st.reviewRow, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// writeRecordSheet writes the header plus one row per record.
func writeRecordSheet(f *excelize.File, sheet string, records []*conference.Conference, st *styles) error {
	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}
	}

	for i, c := range records {
		row := i + 2
		if err := writeRecordRow(f, sheet, row, c, st); err != nil {
			return err
		}
	}

	// Widen the text-heavy columns and freeze the header row.
	if err := f.SetColWidth(sheet, "A", "F", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "I", "L", 32); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// writeRecordRow writes one conference row and applies the conditional fills.
func writeRecordRow(f *excelize.File, sheet string, row int, c *conference.Conference, st *styles) error {
	review := ""
	if c.NeedsReview {
		review = "yes"
	}
	checkedAt := ""
	if !c.CheckedAt.IsZero() {
		checkedAt = c.CheckedAt.UTC().Format("2006-01-02 15:04")
	}
	httpStatus := interface{}("")
	if c.HTTPStatus != 0 {
		httpStatus = c.HTTPStatus
	}

	values := []interface{}{
		c.Name, c.Organization, c.Website, c.Location, c.Audience, c.ListedDates,
		string(c.Status), httpStatus, strings.Join(c.MatchedDates, "; "),
		c.CFPLink, c.Screenshot, c.CheckNotes, review, checkedAt,
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), row)
	if err != nil {
		return err
	}

	// Review tint is applied to the whole row first so the status fill below
	// still wins on the status cell.
	if c.NeedsReview {
		if err := f.SetCellStyle(sheet, first, last, st.reviewRow); err != nil {
			return err
		}
	}

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	statusCell, err := excelize.CoordinatesToCellName(7, row)
	if err != nil {
		return err
	}
	var statusStyle int
	switch c.Status {
	case conference.StatusOK:
		statusStyle = st.statusOK
	case conference.StatusDead:
		statusStyle = st.statusDead
	case conference.StatusUnreachable:
		statusStyle = st.statusUnrch
	default:
		return nil
	}
	return f.SetCellStyle(sheet, statusCell, statusCell, statusStyle)
}

// writeSummarySheet writes run-level stats as label/value pairs.
func writeSummarySheet(f *excelize.File, sum *RunSummary, st *styles) error {
	rows := []struct {
		label string
		value interface{}
	}{
		{"Run started", sum.StartedAt.UTC().Format(time.RFC3339)},
		{"Run finished", sum.FinishedAt.UTC().Format(time.RFC3339)},
		{"Duration", sum.Duration().Round(time.Second).String()},
		{"Input file", sum.Input},
		{"Report file", sum.Output},
		{"Screenshot directory", sum.ScreenshotDir},
		{"Conferences checked", sum.Total},
		{"Live (ok)", sum.OK},
		{"Dead", sum.Dead},
		{"Unreachable", sum.Unreachable},
		{"Pages with dates found", sum.WithDates},
		{"Pages with CFP link", sum.WithCFP},
		{"Flagged for review", sum.NeedsReview},
	}

	for i, r := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, labelCell, r.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetSummary, labelCell, labelCell, st.header); err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, valueCell, r.value); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetSummary, "A", "B", 28)
}
