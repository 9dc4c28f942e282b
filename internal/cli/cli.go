package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/conf-verify/internal/browser"
	"github.com/pfrederiksen/conf-verify/internal/checker"
	"github.com/pfrederiksen/conf-verify/internal/conference"
	"github.com/pfrederiksen/conf-verify/internal/config"
	"github.com/pfrederiksen/conf-verify/internal/filter"
	"github.com/pfrederiksen/conf-verify/internal/logger"
	"github.com/pfrederiksen/conf-verify/internal/report"
	"github.com/pfrederiksen/conf-verify/internal/storage"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitNeedsReview = 2
)

var (
	flagInput           string
	flagOutput          string
	flagScreenshotDir   string
	flagSkipScreenshots bool
	flagResultsFile     string
	flagDelay           time.Duration
	flagTimeout         time.Duration
	flagLimit           int
	flagFilter          string
	flagFormat          string
	flagVerbose         bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf-verify",
		Short: "Verify conference listings against their websites",
		Long: `A one-shot batch tool that verifies a list of conference listings.
For each conference it visits the website with a headless browser, checks
liveness, scans the page for date mentions and call-for-proposal links,
captures a screenshot, and compiles everything into an Excel report.`,
		RunE: runVerify,
	}

	// Define flags
	cmd.Flags().StringVar(&flagInput, "input", "", "Conferences JSON file (required)")
	cmd.Flags().StringVar(&flagOutput, "output", "conference-report.xlsx", "Excel report path")
	cmd.Flags().StringVar(&flagScreenshotDir, "screenshot-dir", "screenshots", "Directory for PNG screenshots")
	cmd.Flags().BoolVar(&flagSkipScreenshots, "skip-screenshots", false, "Disable screenshot capture")
	cmd.Flags().StringVar(&flagResultsFile, "results-file", "", "Optional JSON results file")
	cmd.Flags().DurationVar(&flagDelay, "delay", 2*time.Second, "Pause between conferences")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Per-site navigation deadline")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Verify at most N conferences (0 = all)")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "Comma-separated terms matched against name/organization/location/audience")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.MarkFlagRequired("input")

	return cmd
}

// runVerify wraps the run so deferred cleanup (notably shutting down the
// headless Chrome) happens before the process exits.
func runVerify(cmd *cobra.Command, args []string) error {
	code, err := verify()
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}

// verify is the main command logic; it returns the process exit code.
func verify() (int, error) {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return 0, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	// Load and validate the input list; any problem here is fatal.
	conferences, err := config.Load(flagInput)
	if err != nil {
		return 0, fmt.Errorf("loading conferences: %w", err)
	}

	f := filter.New(flagFilter)
	if !f.Empty() {
		before := len(conferences)
		conferences = f.Apply(conferences)
		logger.Debug("Applied filter", logger.Fields{
			"expression": flagFilter,
			"before":     before,
			"after":      len(conferences),
		})
	}
	if flagLimit > 0 && len(conferences) > flagLimit {
		conferences = conferences[:flagLimit]
	}
	if len(conferences) == 0 {
		return 0, fmt.Errorf("no conferences left to verify after filtering")
	}

	if !flagSkipScreenshots {
		if err := os.MkdirAll(flagScreenshotDir, 0755); err != nil {
			return 0, fmt.Errorf("creating screenshot directory: %w", err)
		}
	}

	b := browser.New(browser.Options{
		Timeout:            flagTimeout,
		CaptureScreenshots: !flagSkipScreenshots,
	})
	defer b.Close()

	sum := &report.RunSummary{
		Input:     flagInput,
		Output:    flagOutput,
		StartedAt: time.Now().UTC(),
		Total:     len(conferences),
	}
	if !flagSkipScreenshots {
		sum.ScreenshotDir = flagScreenshotDir
	}

	// Sequential loop, one site at a time, fixed delay between iterations to
	// avoid overloading target servers.
	takenNames := make(map[string]bool)
	for i, c := range conferences {
		if i > 0 && flagDelay > 0 {
			time.Sleep(flagDelay)
		}
		verifyOne(b, c, i, takenNames)
	}
	sum.FinishedAt = time.Now().UTC()

	tally(sum, conferences)
	logRunMetrics()

	if err := report.Write(flagOutput, conferences, sum); err != nil {
		return 0, fmt.Errorf("writing report: %w", err)
	}
	logger.Info("Report written", logger.Fields{"path": flagOutput})

	if flagResultsFile != "" {
		store, err := storage.New(flagResultsFile)
		if err != nil {
			return 0, fmt.Errorf("initializing results store: %w", err)
		}
		res := &storage.Results{
			Input:       flagInput,
			Report:      flagOutput,
			Conferences: conferences,
		}
		if err := store.SaveResults(res); err != nil {
			return 0, fmt.Errorf("saving results: %w", err)
		}
		logger.Info("Results saved", logger.Fields{"path": flagResultsFile})
	}

	result := &OutputResult{
		CheckedAt:   time.Now().UTC(),
		Summary:     sum,
		Conferences: conferences,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	return exitCode(sum), nil
}

// exitCode maps the run summary to the process exit code.
func exitCode(sum *report.RunSummary) int {
	if sum.NeedsReview > 0 {
		return ExitNeedsReview
	}
	return ExitSuccess
}

// verifyOne enriches a single conference record in place. Failures are
// recorded on the record and never abort the run.
func verifyOne(b *browser.Browser, c *conference.Conference, index int, takenNames map[string]bool) {
	c.CheckedAt = time.Now().UTC()

	logger.Info("Checking conference", logger.Fields{
		"conference": c.Name,
		"website":    c.Website,
	})

	start := time.Now()
	page, err := b.Visit(c.Website)
	logger.RecordTiming("browser.visit", time.Since(start))

	if err != nil {
		c.Status = conference.StatusUnreachable
		c.Flag("navigation failed: " + err.Error())
		logger.IncrCounter("sites.unreachable")
		logger.Warn("Site unreachable", logger.Fields{
			"conference": c.Name,
			"website":    c.Website,
			"error":      err.Error(),
		})
		return
	}

	c.HTTPStatus = page.StatusCode
	c.FinalURL = page.FinalURL
	c.PageTitle = page.Title
	c.Status = conference.ClassifyHTTPStatus(page.StatusCode)
	logger.IncrCounter("sites." + string(c.Status))

	switch c.Status {
	case conference.StatusDead:
		c.Flag(fmt.Sprintf("site returned HTTP %d", page.StatusCode))
	case conference.StatusUnreachable:
		c.Flag("no document response observed")
	}

	scanPage(c, page)
	saveScreenshot(c, page, index, takenNames)

	logger.Info("Conference checked", logger.Fields{
		"conference":   c.Name,
		"status":       string(c.Status),
		"http_status":  c.HTTPStatus,
		"dates_found":  len(c.MatchedDates),
		"cfp_found":    c.CFPLink != "",
		"needs_review": c.NeedsReview,
	})
}

// scanPage runs the text and link checks over the rendered page.
func scanPage(c *conference.Conference, page *browser.Page) {
	text, err := checker.PageText(page.HTML)
	if err != nil {
		c.Flag("could not extract page text: " + err.Error())
		return
	}
	if text == "" && c.Status == conference.StatusOK {
		c.Flag("page rendered no visible text")
	}

	c.MatchedDates = checker.ScanDates(text)
	if len(c.MatchedDates) == 0 && c.Status == conference.StatusOK {
		c.Flag("no date mentions found")
	}

	base := page.FinalURL
	if base == "" {
		base = c.Website
	}
	link, err := checker.FindCFPLink(page.HTML, base)
	if err != nil {
		c.AddNote("could not scan links: " + err.Error())
		return
	}
	if link != nil {
		c.CFPLink = link.URL
		c.CFPText = link.Text
	}
}

// saveScreenshot writes the captured PNG, if any, under the screenshot dir.
func saveScreenshot(c *conference.Conference, page *browser.Page, index int, takenNames map[string]bool) {
	if flagSkipScreenshots || len(page.Screenshot) == 0 {
		return
	}

	name := conference.UniqueScreenshotName(c.Name, index, takenNames)
	path := filepath.Join(flagScreenshotDir, name)
	if err := os.WriteFile(path, page.Screenshot, 0644); err != nil {
		c.Flag("screenshot write failed: " + err.Error())
		return
	}
	c.Screenshot = path
}

// logRunMetrics emits the collected counters and timings at debug level so a
// verbose run shows where the time went.
func logRunMetrics() {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}

// tally fills the aggregate counts on the run summary.
func tally(sum *report.RunSummary, conferences []*conference.Conference) {
	for _, c := range conferences {
		switch c.Status {
		case conference.StatusOK:
			sum.OK++
		case conference.StatusDead:
			sum.Dead++
		case conference.StatusUnreachable:
			sum.Unreachable++
		}
		if len(c.MatchedDates) > 0 {
			sum.WithDates++
		}
		if c.CFPLink != "" {
			sum.WithCFP++
		}
		if c.NeedsReview {
			sum.NeedsReview++
		}
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
