package scanner

import (
	"context"
	"time"
)

// Session is the browser capability the scan pipeline needs. The concrete
// implementation is browser.Session; tests substitute a fake. The scanner
// never owns the session's lifecycle state beyond Start/Stop: the handle
// is passed in at construction and used one-directionally.
type Session interface {
	Start(ctx context.Context) error
	Stop()

	NavigateAndWait(ctx context.Context, url string, timeout time.Duration) error
	NavigateBack(ctx context.Context) error
	CurrentURL(ctx context.Context) (string, error)
	PageText(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, expr string, out any) error
	ClearEphemeralState(ctx context.Context) error

	Reload(ctx context.Context) error
	Restart(ctx context.Context) error
}
