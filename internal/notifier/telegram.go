package notifier

import (
	"fmt"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/match"
	"github.com/VictorZP/halfs-app-sub001/internal/telegram"
)

// TelegramNotifier sends scan reports to a Telegram chat
type TelegramNotifier struct {
	client *telegram.Client
}

// NewTelegramNotifier creates a Telegram notifier from bot credentials
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	return &TelegramNotifier{client: client}, nil
}

// Notify sends the scan report as a single message
func (n *TelegramNotifier) Notify(matches []match.Confirmed, target time.Time) error {
	if err := n.client.SendMessage(telegram.FormatReport(matches, target)); err != nil {
		return fmt.Errorf("sending scan report: %w", err)
	}
	return nil
}
