package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/browser"
	"github.com/VictorZP/halfs-app-sub001/internal/logger"
	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// ScanState carries the advisory cancellation flag for a running scan.
// Cancellation is polled at tournament boundaries and between candidate
// confirmations; work already in flight finishes normally.
type ScanState struct {
	cancelled atomic.Bool
}

func NewScanState() *ScanState {
	return &ScanState{}
}

// RequestCancel asks the current scan to stop at its next checkpoint.
func (s *ScanState) RequestCancel() {
	s.cancelled.Store(true)
}

func (s *ScanState) CancelRequested() bool {
	return s.cancelled.Load()
}

func (s *ScanState) reset() {
	s.cancelled.Store(false)
}

// Tournament is one scan target: a display name and its listing page URL.
type Tournament struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProgressFunc receives human-readable progress updates. percent is 0-100.
type ProgressFunc func(message string, percent int)

// Scanner walks a set of tournament listing pages and confirms which
// matches are played on a target date.
type Scanner struct {
	sess    Session
	retrier *browser.Retrier

	// PageTimeout bounds each tournament page load.
	PageTimeout time.Duration

	clickSettle time.Duration
	backSettle  time.Duration
}

func New(sess Session) *Scanner {
	return &Scanner{
		sess:        sess,
		retrier:     browser.NewRetrier(browser.DefaultPolicy()),
		PageTimeout: browser.PageLoadTimeout,
		clickSettle: clickSettleDelay,
		backSettle:  backSettleDelay,
	}
}

// Scan visits every tournament in order and returns the confirmed matches
// across all of them, each tagged with the tournament it came from. A
// tournament that fails is logged and skipped; results gathered before a
// cancellation request are retained.
func (s *Scanner) Scan(ctx context.Context, tournaments []Tournament, target time.Time, state *ScanState, progress ProgressFunc) ([]match.Confirmed, error) {
	if state == nil {
		state = NewScanState()
	}
	state.reset()
	if progress == nil {
		progress = func(string, int) {}
	}

	if err := s.sess.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting scan session: %w", err)
	}
	defer s.sess.Stop()

	logger.Info("Starting tournament scan", logger.Fields{
		"tournaments": len(tournaments),
		"target_date": target.Format("2006-01-02"),
	})

	var results []match.Confirmed
	for i, tr := range tournaments {
		if state.CancelRequested() || ctx.Err() != nil {
			logger.Info("Scan cancelled", logger.Fields{"completed": i, "total": len(tournaments)})
			break
		}

		progress(fmt.Sprintf("Scanning %s", tr.Name), i*100/len(tournaments))
		logger.IncrCounter("scan.tournaments")

		started := time.Now()
		confirmed, err := s.scanTournament(ctx, tr, target, state)
		logger.RecordTiming("scan.tournament", time.Since(started))
		if err != nil {
			logger.Error("Tournament scan failed, skipping", logger.Fields{
				"tournament": tr.Name,
				"url":        tr.URL,
			}, err)
			continue
		}

		for j := range confirmed {
			confirmed[j].Tournament = tr.Name
			confirmed[j].TournamentURL = tr.URL
		}
		results = append(results, confirmed...)
		logger.Debug("Tournament scanned", logger.Fields{
			"tournament": tr.Name,
			"confirmed":  len(confirmed),
		})
	}

	logger.SetGauge("scan.matches", float64(len(results)))
	progress("Scan complete", 100)
	return results, nil
}

// scanTournament loads one tournament page, extracts its match cards and
// confirms them against target. State carried over from earlier
// tournaments (cookies, web storage) is cleared first so each tournament
// sees a fresh page.
func (s *Scanner) scanTournament(ctx context.Context, tr Tournament, target time.Time, state *ScanState) ([]match.Confirmed, error) {
	if err := s.sess.ClearEphemeralState(ctx); err != nil {
		logger.Warn("Could not clear session state", logger.Fields{"error": err.Error()})
	}

	if state.CancelRequested() || ctx.Err() != nil {
		return nil, nil
	}

	started := time.Now()
	err := s.retrier.Do(ctx, s.sess, func(ctx context.Context) error {
		return s.sess.NavigateAndWait(ctx, tr.URL, s.PageTimeout)
	})
	logger.RecordTiming("scan.navigate", time.Since(started))
	if err != nil {
		return nil, err
	}

	if err := s.recoverIfBlocked(ctx, tr.URL); err != nil {
		return nil, err
	}

	candidates, err := extractMatches(ctx, s.sess)
	if err != nil {
		// A page whose structure we cannot read yields zero candidates
		// rather than failing the tournament outright.
		logger.Warn("Extraction failed, treating as empty page", logger.Fields{
			"tournament": tr.Name,
			"error":      err.Error(),
		})
		return nil, nil
	}
	if len(candidates) == 0 {
		logger.Debug("No match cards on page", logger.Fields{"tournament": tr.Name})
		return nil, nil
	}

	c := newConfirmer(s.sess, state)
	c.clickSettle = s.clickSettle
	c.backSettle = s.backSettle
	return c.confirmAll(ctx, candidates, target), nil
}

// recoverIfBlocked detects the CDN's 403 block page and tries one recovery
// cycle: clear state and reload. If the block persists the tournament
// fails.
func (s *Scanner) recoverIfBlocked(ctx context.Context, url string) error {
	text, err := s.sess.PageText(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(text, "403 ERROR") {
		return nil
	}

	logger.Warn("Access blocked, attempting recovery", logger.Fields{"url": url})
	if err := s.sess.ClearEphemeralState(ctx); err != nil {
		logger.Warn("Could not clear session state", logger.Fields{"error": err.Error()})
	}
	if err := s.sess.Reload(ctx); err != nil {
		return err
	}

	text, err = s.sess.PageText(ctx)
	if err != nil {
		return err
	}
	if strings.Contains(text, "403 ERROR") {
		return &browser.NavigationError{URL: url, Err: fmt.Errorf("access still blocked after recovery")}
	}
	return nil
}
