package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/browser"
	"github.com/VictorZP/halfs-app-sub001/internal/logger"
	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

const (
	// scheduledWorkers bounds the pool confirming SCHEDULED candidates.
	// Those confirmations read card text only and never touch the session,
	// so they are safe to run concurrently.
	scheduledWorkers = 4

	clickSettleDelay = 1500 * time.Millisecond
	backSettleDelay  = 500 * time.Millisecond
)

// repositionJS pins an off-viewport card to a fixed on-screen position so
// it can be interacted with, and reports its new center.
const repositionJS = `
(function() {
	var elements = document.querySelectorAll(%q);
	var element = elements[%d];
	if (!element) {
		return null;
	}
	element.style.position = 'fixed';
	element.style.top = '150px';
	element.style.left = '50%%';
	element.style.transform = 'translateX(-50%%)';
	element.style.zIndex = '99999';
	var rect = element.getBoundingClientRect();
	return {x: rect.x + rect.width / 2, y: rect.y + rect.height / 2};
})()
`

// clickCandidateJS scrolls a card into view and clicks its detail link,
// falling back to clicking the card itself.
const clickCandidateJS = `
(function() {
	var elements = document.querySelectorAll(%q);
	var element = elements[%d];
	if (!element) {
		return 'not_found';
	}
	element.scrollIntoView(true);
	var link = element.querySelector('a');
	if (link) {
		link.click();
		return 'link_clicked';
	}
	element.click();
	return 'element_clicked';
})()
`

// confirmer runs the per-candidate confirmation state machine for one
// tournament's candidates. Each tournament scan gets a fresh confirmer and
// with it a fresh visited-URL set.
type confirmer struct {
	sess  Session
	state *ScanState

	workers     int
	clickSettle time.Duration
	backSettle  time.Duration

	mu      sync.Mutex
	visited map[string]struct{}
}

func newConfirmer(sess Session, state *ScanState) *confirmer {
	return &confirmer{
		sess:        sess,
		state:       state,
		workers:     scheduledWorkers,
		clickSettle: clickSettleDelay,
		backSettle:  backSettleDelay,
		visited:     make(map[string]struct{}),
	}
}

func (c *confirmer) visitedHas(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.visited[url]
	return ok
}

func (c *confirmer) visitedAdd(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range urls {
		if u != "" {
			c.visited[u] = struct{}{}
		}
	}
}

// confirmAll confirms every candidate against target and returns the
// confirmed entries only. SCHEDULED candidates are resolved concurrently
// from their card text; LIVE and FINAL candidates are resolved strictly
// sequentially because each one navigates the shared session.
func (c *confirmer) confirmAll(ctx context.Context, candidates []match.Candidate, target time.Time) []match.Confirmed {
	scheduled := make([]match.Candidate, 0, len(candidates))
	navigational := make([]match.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		switch cand.Classification {
		case match.Scheduled:
			scheduled = append(scheduled, cand)
		case match.Live, match.Final:
			navigational = append(navigational, cand)
		default:
			// UNKNOWN cards carry nothing to confirm a date against.
		}
	}

	logger.Debug("Confirming candidates", logger.Fields{
		"scheduled":  len(scheduled),
		"live_final": len(navigational),
	})

	confirmed := make([]match.Confirmed, 0, len(candidates))
	confirmed = append(confirmed, c.confirmScheduled(scheduled, target)...)

	for _, cand := range navigational {
		if c.state.CancelRequested() || ctx.Err() != nil {
			break
		}
		if result, ok := c.confirmByNavigation(ctx, cand, target); ok {
			confirmed = append(confirmed, result)
		}
	}
	return confirmed
}

// confirmScheduled resolves scheduled candidates' card text on a bounded
// worker pool. Results arrive in completion order, which is fine: the
// consumer keys off tournament tags, not position.
func (c *confirmer) confirmScheduled(candidates []match.Candidate, target time.Time) []match.Confirmed {
	if len(candidates) == 0 {
		return nil
	}

	workers := c.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan match.Candidate)
	var (
		mu  sync.Mutex
		out []match.Confirmed
		wg  sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				matched, literal := match.ResolveDate(cand.DisplayText, target)
				if !matched {
					continue
				}
				mu.Lock()
				out = append(out, match.Confirmed{
					DetailURL:      cand.DetailURL,
					DisplayText:    cand.DisplayText,
					Classification: cand.Classification,
					ConfirmedDate:  literal,
				})
				mu.Unlock()
			}
		}()
	}

	for _, cand := range candidates {
		jobs <- cand
	}
	close(jobs)
	wg.Wait()

	return out
}

// confirmByNavigation clicks into a LIVE/FINAL candidate's detail page and
// resolves the landed page's text against target. Whatever the outcome,
// the session is returned to the page it was on before the click so later
// candidates see consistent state. Any error skips this candidate only.
func (c *confirmer) confirmByNavigation(ctx context.Context, cand match.Candidate, target time.Time) (match.Confirmed, bool) {
	if c.visitedHas(cand.DetailURL) {
		logger.Debug("Detail URL already visited, skipping", logger.Fields{"url": cand.DetailURL})
		return match.Confirmed{}, false
	}

	originalURL, err := c.sess.CurrentURL(ctx)
	if err != nil {
		logger.Warn("Could not record current URL, skipping candidate", logger.Fields{"error": err.Error()})
		return match.Confirmed{}, false
	}

	defer c.restore(ctx, originalURL)

	var viewportHeight float64
	if err := c.sess.Evaluate(ctx, "window.innerHeight", &viewportHeight); err != nil {
		logger.Warn("Viewport probe failed, skipping candidate", logger.Fields{"error": err.Error()})
		return match.Confirmed{}, false
	}

	if cand.Y < 0 || cand.Y > viewportHeight {
		var pos struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}
		script := fmt.Sprintf(repositionJS, cand.Selector, cand.ElementIndex)
		if err := c.sess.Evaluate(ctx, script, &pos); err != nil {
			logger.Debug("Reposition failed, clicking in place", logger.Fields{"error": err.Error()})
		}
	}

	var clickResult string
	if err := c.sess.Evaluate(ctx, fmt.Sprintf(clickCandidateJS, cand.Selector, cand.ElementIndex), &clickResult); err != nil {
		logger.Warn("Click failed, skipping candidate", logger.Fields{"error": err.Error()})
		return match.Confirmed{}, false
	}

	time.Sleep(c.clickSettle)

	landedURL, err := c.sess.CurrentURL(ctx)
	if err != nil {
		logger.Warn("Could not read landed URL, skipping candidate", logger.Fields{"error": err.Error()})
		return match.Confirmed{}, false
	}
	if landedURL == originalURL || !strings.Contains(landedURL, "/u/") {
		logger.Debug("Click did not land on a detail page", logger.Fields{"landed": landedURL})
		return match.Confirmed{}, false
	}
	if c.visitedHas(landedURL) {
		logger.Debug("Landed on an already-visited detail page", logger.Fields{"url": landedURL})
		return match.Confirmed{}, false
	}
	c.visitedAdd(landedURL, cand.DetailURL)

	pageText, err := c.sess.PageText(ctx)
	if err != nil {
		logger.Warn("Could not read detail page text, skipping candidate", logger.Fields{"error": err.Error()})
		return match.Confirmed{}, false
	}

	matched, literal := match.ResolveDate(pageText, target)
	if !matched {
		logger.Debug("Detail page date does not match target", logger.Fields{"url": landedURL})
		return match.Confirmed{}, false
	}

	return match.Confirmed{
		DetailURL:      landedURL,
		DisplayText:    cand.DisplayText,
		Classification: cand.Classification,
		ConfirmedDate:  literal,
	}, true
}

// restore brings the session back to originalURL after a candidate has
// been handled, preferring history navigation and falling back to a
// direct load.
func (c *confirmer) restore(ctx context.Context, originalURL string) {
	current, err := c.sess.CurrentURL(ctx)
	if err == nil && current == originalURL {
		return
	}

	if err := c.sess.NavigateBack(ctx); err == nil {
		if current, cerr := c.sess.CurrentURL(ctx); cerr == nil && current == originalURL {
			time.Sleep(c.backSettle)
			return
		}
	}

	if err := c.sess.NavigateAndWait(ctx, originalURL, browser.PageLoadTimeout); err != nil {
		logger.Error("Could not restore tournament page", logger.Fields{"url": originalURL}, err)
	}
	time.Sleep(c.backSettle)
}
