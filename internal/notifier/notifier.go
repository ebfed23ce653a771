package notifier

import (
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// Notifier defines the interface for posting scan results
type Notifier interface {
	// Notify posts the confirmed matches of a scan for target date
	Notify(matches []match.Confirmed, target time.Time) error
}
