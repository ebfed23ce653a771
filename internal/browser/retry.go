package browser

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/VictorZP/halfs-app-sub001/internal/logger"
)

// Policy controls how a fragile session operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt; it doubles
	// after every further failure.
	InitialDelay time.Duration
}

// DefaultPolicy returns the standard schedule: three attempts with a 2s
// delay doubling to 4s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
	}
}

// Recoverable is the slice of the session a Retrier is allowed to touch
// between attempts.
type Recoverable interface {
	Reload(ctx context.Context) error
	Restart(ctx context.Context) error
}

// Retrier wraps fragile session operations with retry and recovery.
// Between attempts it first tries a lightweight page reload; if the reload
// itself fails, it falls back to a full session restart.
type Retrier struct {
	policy Policy
}

// NewRetrier creates a Retrier with the given policy. Zero or negative
// policy values fall back to the defaults.
func NewRetrier(policy Policy) *Retrier {
	def := DefaultPolicy()
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = def.MaxAttempts
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = def.InitialDelay
	}
	return &Retrier{policy: policy}
}

// Do runs op, retrying on failure until the policy's attempts are spent,
// then propagates the operation's last failure. op receives the caller's
// context and must be safe to re-invoke after the session has been
// reloaded or fully restarted. A failed operation is fatal only for
// itself; callers decide whether it fails the scan.
func (r *Retrier) Do(ctx context.Context, sess Recoverable, op func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.policy.InitialDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 1 * time.Hour
	bo.MaxElapsedTime = 0

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		logger.Warn("Session operation failed, retrying", logger.Fields{
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
		if rerr := sess.Reload(ctx); rerr != nil {
			logger.Warn("Page reload failed, restarting session", logger.Fields{
				"error": rerr.Error(),
			})
			if serr := sess.Restart(ctx); serr != nil {
				logger.Error("Session restart failed", nil, serr)
			}
		}
	}

	retries := uint64(r.policy.MaxAttempts - 1)
	return backoff.RetryNotify(
		func() error { return op(ctx) },
		backoff.WithMaxRetries(backoff.WithContext(bo, ctx), retries),
		notify,
	)
}
