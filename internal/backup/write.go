package backup

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/backupsync/internal/backup/names"
	"github.com/dmitrijs2005/backupsync/internal/common"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// BlobProducer lazily supplies the payload for SaveOnce. It is invoked at
// most once, and only when no record with the requested name exists yet.
// Returning a nil blob with nil error means the caller had nothing to
// upload, which fails the operation.
type BlobProducer func(ctx context.Context) ([]byte, error)

// saveOptions configures every record save: single-record batches need no
// atomicity, and marking the operation long-lived and background lets it
// survive process suspension.
var saveOptions = remote.SaveOptions{
	Atomic:     false,
	LongLived:  true,
	Background: true,
}

// Save uploads a new record unconditionally, overwriting any existing
// record of the same name. Returns the record name on success.
func (c *Client) Save(ctx context.Context, blob []byte, name string) (string, error) {
	err := c.withRetry(ctx, "save record", func(ctx context.Context) error {
		return c.conn.SaveRecord(ctx, name, names.RecordType, blob, saveOptions)
	})
	if err != nil {
		return "", err
	}
	c.log.Info(ctx, "record saved", "record", name, "size", len(blob))
	return name, nil
}

// Upsert creates the record or replaces its payload if it already exists.
// The store offers no conditional-write primitive, so this costs a full
// existence round trip before the save; the check-then-write is racy
// against concurrent writers of the same name.
func (c *Client) Upsert(ctx context.Context, blob []byte, name string) (string, error) {
	found, err := c.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if found {
		c.log.Debug(ctx, "record exists, replacing payload", "record", name)
	} else {
		c.log.Debug(ctx, "record absent, creating", "record", name)
	}
	return c.Save(ctx, blob, name)
}

// SaveOnce implements the create-only policy for persistent, shareable
// records: if a record with the name already exists, it is left untouched
// and its name returned without invoking produce. Otherwise produce is
// called for the payload and the record is saved.
func (c *Client) SaveOnce(ctx context.Context, name string, produce BlobProducer) (string, error) {
	found, err := c.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if found {
		c.log.Debug(ctx, "record already exists, skipping upload", "record", name)
		return name, nil
	}

	blob, err := produce(ctx)
	if err != nil {
		return "", fmt.Errorf("preparing upload for %s: %w", name, err)
	}
	if blob == nil {
		return "", fmt.Errorf("preparing upload for %s: %w", name, common.ErrorNothingToUpload)
	}

	return c.Save(ctx, blob, name)
}

// Delete removes a batch of records by name. A record that is already
// absent is not an error.
func (c *Client) Delete(ctx context.Context, recordNames ...string) error {
	if len(recordNames) == 0 {
		return nil
	}
	err := c.withRetry(ctx, "delete records", func(ctx context.Context) error {
		return c.conn.DeleteRecords(ctx, recordNames)
	})
	if err != nil {
		if remote.IsUnknownItem(err) {
			c.log.Debug(ctx, "records already absent", "count", len(recordNames))
			return nil
		}
		return err
	}
	c.log.Info(ctx, "records deleted", "count", len(recordNames))
	return nil
}
