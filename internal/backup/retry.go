package backup

import (
	"context"
	"fmt"
	"time"
)

// Sleeper waits out retry delays. It exists so tests can drive the retry
// loop with a fake clock instead of real timers.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type clockSleeper struct{}

func (clockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withRetry issues call and feeds each result through Classify, retrying
// transient failures until success, absence, or a terminal outcome. The
// budget is threaded explicitly through the loop rather than mutated on the
// client, so every invocation starts fresh.
//
// On UnknownItem the underlying not-found error is returned as-is; callers
// decide whether absence is an error (see remote.IsUnknownItem).
func (c *Client) withRetry(ctx context.Context, label string, call func(ctx context.Context) error) error {
	remaining := c.maxRetries
	for {
		err := call(ctx)
		d := Classify(ctx, err, remaining, label, c.log)

		switch d.Outcome {
		case Success:
			return nil

		case UnknownItem:
			return d.Err

		case FailureDoNotRetry:
			return fmt.Errorf("%s: %w", label, d.Err)

		case FailureRetryWithoutDelay:
			remaining--
			c.log.Debug(ctx, "retrying immediately", "op", label, "remaining", remaining)

		case FailureRetryAfterDelay:
			remaining--
			c.log.Debug(ctx, "retrying after delay", "op", label, "delay", d.Delay, "remaining", remaining)
			if serr := c.sleep.Sleep(ctx, d.Delay); serr != nil {
				return fmt.Errorf("%s: %w", label, serr)
			}
		}
	}
}
