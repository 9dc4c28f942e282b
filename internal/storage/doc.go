// Package storage persists the enriched results of a verification run as a
// pretty-printed JSON file, for operators who want to diff runs or feed the
// results into other tooling alongside the Excel report.
package storage
