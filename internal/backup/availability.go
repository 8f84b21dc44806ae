package backup

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/backupsync/internal/common"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// CheckAvailability queries the remote store's account status and reports
// whether backup operations should be attempted this session. The four
// failure reasons are distinct sentinels so the caller can render a
// specific remediation message; none of them is transient, so nothing here
// is retried.
func (c *Client) CheckAvailability(ctx context.Context) error {
	status, err := c.conn.AccountStatus(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorAccountCheckFailed, err)
	}

	switch status {
	case remote.StatusAvailable:
		return nil
	case remote.StatusCouldNotDetermine:
		return common.ErrorAccountIndeterminate
	case remote.StatusNoAccount:
		return common.ErrorNoAccount
	case remote.StatusRestricted:
		return common.ErrorAccountRestricted
	default:
		return fmt.Errorf("%w: unexpected status %v", common.ErrorAccountCheckFailed, status)
	}
}
