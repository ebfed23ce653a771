package browser

import (
	"errors"
	"fmt"
)

// ErrNotStarted is returned when a session operation runs before Start.
var ErrNotStarted = errors.New("browser session not started")

// SessionError means the automation engine could not be launched. It is
// fatal to a whole scan: no tournament can be checked without a browser.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("launching browser session: %v", e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// NavigationError means a page load failed. Navigation failures are
// retryable; callers route them through a Retrier.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigating to %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// TimeoutError means a page load or explicit wait exceeded its ceiling.
// Timeouts are retryable and never silently swallowed.
type TimeoutError struct {
	Op  string
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s timed out for %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
