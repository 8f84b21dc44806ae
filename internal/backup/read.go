package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/backupsync/internal/backup/names"
	"github.com/dmitrijs2005/backupsync/internal/common"
	"github.com/dmitrijs2005/backupsync/internal/filex"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// Exists reports whether a record with the given name is present. The fetch
// is restricted to metadata to avoid transferring the payload.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	var found bool
	err := c.withRetry(ctx, "check record", func(ctx context.Context) error {
		rec, err := c.conn.FetchRecord(ctx, name, remote.MetadataOnly)
		if err != nil {
			return err
		}
		found = rec != nil
		return nil
	})
	if err != nil {
		if remote.IsUnknownItem(err) {
			return false, nil
		}
		return false, err
	}
	return found, nil
}

// fetch retrieves the full record and validates that the payload is
// actually there. A successful fetch without the payload field means the
// store's success signal contradicts its data; that is terminal, since
// retrying cannot fix a contract mismatch.
func (c *Client) fetch(ctx context.Context, name string) (*remote.Record, error) {
	var rec *remote.Record
	err := c.withRetry(ctx, "fetch record", func(ctx context.Context) error {
		r, err := c.conn.FetchRecord(ctx, name, remote.FullRecord)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Payload == nil {
		return nil, fmt.Errorf("fetch record %s: %w: payload field missing", name, common.ErrorInvalidResponse)
	}
	return rec, nil
}

// Download fetches the record's payload into memory.
func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	rec, err := c.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rec.Payload.Close()

	blob, err := io.ReadAll(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("reading payload of %s: %w", name, err)
	}
	return blob, nil
}

// DownloadTo fetches the record's payload and copies it to the destination
// path, creating missing parent directories.
func (c *Client) DownloadTo(ctx context.Context, name, dest string) error {
	rec, err := c.fetch(ctx, name)
	if err != nil {
		return err
	}
	defer rec.Payload.Close()

	if err := filex.EnsureParentDir(dest); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, rec.Payload); err != nil {
		return fmt.Errorf("writing payload of %s to %s: %w", name, dest, err)
	}
	return f.Close()
}

// ListAll enumerates the names of all backup records, paging through the
// store's cursor until it reports no continuation. When recipientID is
// non-empty, records outside that recipient's prefix are skipped with a
// diagnostic. Page order is preserved. Each page request gets a fresh retry
// budget, shared across retries of that page only.
func (c *Client) ListAll(ctx context.Context, recipientID string) ([]string, error) {
	var prefix string
	if recipientID != "" {
		prefix = names.PrefixFor(recipientID)
	}

	all := []string{}
	var cursor *remote.Cursor
	for {
		var page *remote.Page
		err := c.withRetry(ctx, "list records", func(ctx context.Context) error {
			p, err := c.conn.QueryRecords(ctx, names.RecordType, cursor)
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			if remote.IsUnknownItem(err) {
				// Nothing of this record type was ever written.
				return all, nil
			}
			return nil, err
		}

		for _, n := range page.Names {
			if prefix != "" && !strings.HasPrefix(n, prefix) {
				c.log.Debug(ctx, "skipping record outside recipient scope", "record", n)
				continue
			}
			all = append(all, n)
		}

		if page.Cursor == nil {
			return all, nil
		}
		cursor = page.Cursor
	}
}

// ListManifestRecipients enumerates all manifest records and returns the
// recipient ids that own them. Names that carry no parseable recipient
// prefix are dropped with a diagnostic.
func (c *Client) ListManifestRecipients(ctx context.Context) ([]string, error) {
	recordNames, err := c.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}

	recipients := []string{}
	for _, n := range recordNames {
		if !names.IsManifest(n) {
			continue
		}
		id, ok := names.ExtractRecipientID(n)
		if !ok {
			c.log.Warn(ctx, "manifest record with unparseable name", "record", n)
			continue
		}
		recipients = append(recipients, id)
	}
	return recipients, nil
}
