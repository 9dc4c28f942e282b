package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pfrederiksen/conf-verify/internal/conference"
	"github.com/pfrederiksen/conf-verify/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time                `json:"checked_at"`
	Summary     *report.RunSummary       `json:"summary"`
	Conferences []*conference.Conference `json:"conferences"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs a per-conference table followed by run totals.
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Conference", "Status", "HTTP", "Dates", "CFP", "Review"})

	for _, c := range result.Conferences {
		httpStatus := ""
		if c.HTTPStatus != 0 {
			httpStatus = fmt.Sprintf("%d", c.HTTPStatus)
		}
		cfp := ""
		if c.CFPLink != "" {
			cfp = "yes"
		}
		review := ""
		if c.NeedsReview {
			review = "yes"
		}
		t.AppendRow(table.Row{
			c.Name, string(c.Status), httpStatus, len(c.MatchedDates), cfp, review,
		})
	}
	t.Render()

	if verbose {
		for _, c := range result.Conferences {
			if c.CheckNotes == "" && len(c.MatchedDates) == 0 && c.CFPLink == "" {
				continue
			}
			fmt.Fprintf(w, "\n%s:\n", c.Name)
			if len(c.MatchedDates) > 0 {
				fmt.Fprintf(w, "  Dates: %s\n", strings.Join(c.MatchedDates, "; "))
			}
			if c.CFPLink != "" {
				fmt.Fprintf(w, "  CFP: %s\n", c.CFPLink)
			}
			if c.CheckNotes != "" {
				fmt.Fprintf(w, "  Notes: %s\n", c.CheckNotes)
			}
		}
	}

	sum := result.Summary
	fmt.Fprintf(w, "\nChecked %d conferences in %s: %d ok, %d dead, %d unreachable, %d flagged for review\n",
		sum.Total, sum.Duration().Round(time.Second), sum.OK, sum.Dead, sum.Unreachable, sum.NeedsReview)
	fmt.Fprintf(w, "Report: %s\n", sum.Output)
	if sum.ScreenshotDir != "" {
		fmt.Fprintf(w, "Screenshots: %s\n", sum.ScreenshotDir)
	}

	return nil
}
