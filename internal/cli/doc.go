// Package cli implements the command-line interface for conf-verify.
//
// The cli package provides the Cobra-based CLI that drives the whole batch
// run: it loads and filters the conference list, walks it sequentially with a
// fixed delay between sites, coordinates the browser, checker, report, and
// storage packages, and prints a run summary in text or JSON.
package cli
