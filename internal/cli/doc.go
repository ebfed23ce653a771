// Package cli implements the command-line interface for fibascan.
//
// The cli package provides the Cobra-based CLI with support for scanning
// tournaments for matches on a target date, formatting output (text/JSON),
// sorting, notifications, and managing the tournament registry.
// It coordinates the browser, scanner, registry, and notifier packages.
package cli
