package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitMatches = 2
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fibascan",
		Short: "Scan basketball live-stats tournaments for matches on a date",
		Long: `A CLI tool that scans tournament live-stats pages and reports
which matches are scheduled, live, or finished on a target date.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newTournamentsCmd())

	return cmd
}

// parseTargetDate accepts DD/MM/YYYY (the site's format), YYYY-MM-DD,
// and the keywords "today" and "tomorrow".
func parseTargetDate(value string) (time.Time, error) {
	switch value {
	case "", "today":
		return time.Now(), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1), nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use DD/MM/YYYY or YYYY-MM-DD)", value)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
