package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// fakeSession implements Session in memory. It dispatches Evaluate on
// recognizable fragments of the in-page scripts and models navigation as
// a URL history stack.
type fakeSession struct {
	started bool
	stopped bool

	currentURL string
	history    []string
	pages      map[string]string         // url -> page text
	cards      map[string][]rawCandidate // url -> extraction results

	// clickQueue holds the URL each successive card click lands on. An
	// empty string means the click goes nowhere.
	clickQueue []string

	// blockedURLs marks pages that serve a 403 block page until Reload.
	blockedURLs map[string]bool

	// evalHook, when set, observes every Evaluate call.
	evalHook func(expr string)

	// Injected failures.
	navErr      map[string]error // url -> NavigateAndWait failure
	evalErr     error            // fails every Evaluate
	clickErr    error            // consumed by the next click
	pageTextErr error

	navigations int
	backs       int
	reloads     int
	restarts    int
	clicks      int
	cleared     int
	repositions int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:       make(map[string]string),
		cards:       make(map[string][]rawCandidate),
		blockedURLs: make(map[string]bool),
	}
}

func (f *fakeSession) Start(ctx context.Context) error { f.started = true; return nil }
func (f *fakeSession) Stop()                           { f.stopped = true }
func (f *fakeSession) Restart(ctx context.Context) error {
	f.restarts++
	return nil
}

func (f *fakeSession) Reload(ctx context.Context) error {
	f.reloads++
	delete(f.blockedURLs, f.currentURL)
	return nil
}

func (f *fakeSession) NavigateAndWait(ctx context.Context, url string, timeout time.Duration) error {
	f.navigations++
	if err := f.navErr[url]; err != nil {
		return err
	}
	f.history = append(f.history, f.currentURL)
	f.currentURL = url
	return nil
}

func (f *fakeSession) NavigateBack(ctx context.Context) error {
	f.backs++
	if n := len(f.history); n > 0 {
		f.currentURL = f.history[n-1]
		f.history = f.history[:n-1]
	}
	return nil
}

func (f *fakeSession) CurrentURL(ctx context.Context) (string, error) {
	return f.currentURL, nil
}

func (f *fakeSession) PageText(ctx context.Context) (string, error) {
	if f.pageTextErr != nil {
		return "", f.pageTextErr
	}
	if f.blockedURLs[f.currentURL] {
		return "403 ERROR The request could not be satisfied", nil
	}
	return f.pages[f.currentURL], nil
}

func (f *fakeSession) ClearEphemeralState(ctx context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeSession) Evaluate(ctx context.Context, expr string, out any) error {
	if f.evalHook != nil {
		f.evalHook(expr)
	}
	if f.evalErr != nil {
		return f.evalErr
	}

	switch {
	case strings.Contains(expr, "SHOW OTHER GAMES"):
		if v, ok := out.(*bool); ok {
			*v = false
		}
	case strings.Contains(expr, "results.push"):
		if v, ok := out.(*[]rawCandidate); ok {
			*v = f.cards[f.currentURL]
		}
	case strings.Contains(expr, "window.innerHeight"):
		if v, ok := out.(*float64); ok {
			*v = 800
		}
	case strings.Contains(expr, "link_clicked"):
		f.clicks++
		if f.clickErr != nil {
			err := f.clickErr
			f.clickErr = nil
			return err
		}
		if v, ok := out.(*string); ok {
			*v = "link_clicked"
		}
		if len(f.clickQueue) > 0 {
			landing := f.clickQueue[0]
			f.clickQueue = f.clickQueue[1:]
			if landing != "" {
				f.history = append(f.history, f.currentURL)
				f.currentURL = landing
			}
		}
	case strings.Contains(expr, "translateX"):
		f.repositions++
	default:
		return fmt.Errorf("fake session: unrecognized script %q", expr)
	}
	return nil
}
