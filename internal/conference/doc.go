// Package conference provides the conference record type and the outcome
// fields filled in during a verification run.
//
// Each record is created from the input JSON, enriched exactly once while the
// run visits its website (liveness status, matched dates, CFP link, screenshot
// path, notes, review flag), and then serialized to spreadsheet rows.
package conference
