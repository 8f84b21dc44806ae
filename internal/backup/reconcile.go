package backup

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// reconcileConcurrency bounds parallel cancellations during startup cleanup.
const reconcileConcurrency = 4

// ReconcileStartup cancels any long-lived operations a previous process
// instance left registered with the store, e.g. after a crash or forced
// termination. Cleanup hygiene only: enumeration or cancellation failures
// are logged, never escalated.
func (c *Client) ReconcileStartup(ctx context.Context) {
	ops, err := c.conn.LongLivedOperations(ctx)
	if err != nil {
		c.log.Warn(ctx, "could not enumerate long-lived operations", "error", err)
		return
	}
	if len(ops) == 0 {
		return
	}

	c.log.Info(ctx, "cancelling stale long-lived operations", "count", len(ops))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileConcurrency)
	for _, op := range ops {
		g.Go(func() error {
			if err := c.conn.CancelOperation(ctx, op); err != nil {
				c.log.Warn(ctx, "could not cancel long-lived operation",
					"operation", op.ID, "record", op.Name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
