// Package scanner implements the tournament scan pipeline: extracting
// match candidates from a live-stats tournament page, confirming each
// candidate's date against a target calendar date, and orchestrating the
// scan across every active tournament.
//
// The pipeline is site-specific by design. A different live-stats site is
// a separate implementation chosen explicitly by the caller, not
// auto-discovered through a parser registry.
package scanner
