package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorZP/halfs-app-sub001/internal/logger"
	"github.com/VictorZP/halfs-app-sub001/internal/match"
)

// ExtractionError means the in-page candidate script failed. Distinct
// from an empty result: a page with no games is not an error.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting match candidates: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// expandSettleDelay gives the page time to render the extra cards after
// the "show other games" expander is clicked.
const expandSettleDelay = 3 * time.Second

// rawCandidate is the wire form produced by the in-page script.
type rawCandidate struct {
	Text     string  `json:"text"`
	URL      string  `json:"url"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Index    int     `json:"index"`
	Selector string  `json:"selector"`
}

// findMatchesJS enumerates the fixed, ordered selector list for match
// cards, keeping only rendered elements that carry a detail link.
const findMatchesJS = `
(function() {
	var results = [];
	var selectors = [
		'.og-match-block',
		'.og-game-block',
		'.top-bar > div[class*="match"]',
		'.matches-bar > div[class*="match"]'
	];
	selectors.forEach(function(selector) {
		var elements = document.querySelectorAll(selector);
		elements.forEach(function(element, index) {
			if (!element.offsetWidth || !element.offsetHeight) {
				return;
			}
			var link = element.querySelector('a');
			if (!link || !link.href) {
				return;
			}
			var text = (element.innerText || element.textContent || '').trim();
			if (!text || text.length < 5) {
				return;
			}
			var rect = element.getBoundingClientRect();
			results.push({
				text: text,
				url: link.href,
				x: rect.x + rect.width / 2,
				y: rect.y + rect.height / 2,
				width: rect.width,
				height: rect.height,
				index: index,
				selector: selector
			});
		});
	});
	return results;
})()
`

// showOtherGamesJS clicks the expander that reveals the rest of the
// round's games, when the page has one. Returns whether it clicked.
const showOtherGamesJS = `
(function() {
	var markers = ['SHOW OTHER GAMES', 'MOSTRAR', 'OTROS PARTIDOS'];
	var nodes = document.querySelectorAll('button, a, div, span');
	for (var i = 0; i < nodes.length; i++) {
		var el = nodes[i];
		if (!el.offsetWidth || !el.offsetHeight) {
			continue;
		}
		var text = (el.innerText || '').trim().toUpperCase();
		if (!text || text.length > 40) {
			continue;
		}
		for (var j = 0; j < markers.length; j++) {
			if (text.indexOf(markers[j]) !== -1) {
				el.click();
				return true;
			}
		}
	}
	return false;
})()
`

// extractMatches enumerates and classifies the visible match cards on the
// tournament page a session is currently on. The result preserves page
// order and is deduplicated by detail URL; it is empty, never nil, when
// the page has no games.
func extractMatches(ctx context.Context, sess Session) ([]match.Candidate, error) {
	var clicked bool
	if err := sess.Evaluate(ctx, showOtherGamesJS, &clicked); err != nil {
		// The expander is optional; its absence or a script hiccup must
		// not abort extraction.
		logger.Debug("Show-other-games expander check failed", logger.Fields{"error": err.Error()})
	} else if clicked {
		logger.Debug("Clicked show-other-games expander", nil)
		time.Sleep(expandSettleDelay)
	}

	var raw []rawCandidate
	if err := sess.Evaluate(ctx, findMatchesJS, &raw); err != nil {
		return nil, &ExtractionError{Err: err}
	}

	return buildCandidates(raw), nil
}

// buildCandidates classifies raw card data and deduplicates by detail
// URL, first occurrence winning across all selectors.
func buildCandidates(raw []rawCandidate) []match.Candidate {
	candidates := make([]match.Candidate, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, rc := range raw {
		if rc.URL == "" || seen[rc.URL] {
			continue
		}
		seen[rc.URL] = true

		candidates = append(candidates, match.Candidate{
			DisplayText:    rc.Text,
			Classification: match.Classify(rc.Text),
			DetailURL:      rc.URL,
			Selector:       rc.Selector,
			ElementIndex:   rc.Index,
			X:              rc.X,
			Y:              rc.Y,
			Width:          rc.Width,
			Height:         rc.Height,
		})
	}
	return candidates
}
