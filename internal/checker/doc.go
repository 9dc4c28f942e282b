// Package checker contains the pure per-page checks: visible text extraction,
// date mention scanning, and call-for-proposals link detection. Everything
// here operates on rendered HTML handed over by the browser package, so it is
// directly testable against fixtures.
package checker
