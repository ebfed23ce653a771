package notifier

import (
	"fmt"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
	"github.com/VictorZP/halfs-app-sub001/internal/telegram"
)

// DryRunNotifier prints what would be sent without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the report that would be posted
func (n *DryRunNotifier) Notify(matches []match.Confirmed, target time.Time) error {
	report := telegram.FormatReport(matches, target)
	fmt.Println("--- Scan report (dry run) ---")
	fmt.Println(report)
	fmt.Printf("\n(Length: %d characters)\n", len(report))
	return nil
}
