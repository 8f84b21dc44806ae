// Package backup implements the client-side operation set for synchronizing
// backup records with the remote store: save, upsert, save-once, delete,
// existence check, download, paginated listing, availability check and
// startup reconciliation. All operations run their remote calls through a
// shared retry/outcome classifier; only terminal failures surface to the
// caller.
package backup

import (
	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// maxRetries is the fixed per-operation retry budget. Each page of a
// paginated query gets its own fresh budget.
const maxRetries = 5

type Client struct {
	conn       remote.Conn
	log        logging.Logger
	sleep      Sleeper
	maxRetries int
}

type Option func(*Client)

// WithSleeper replaces the real clock used for delayed retries.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithMaxRetries overrides the per-operation retry budget.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

func NewClient(conn remote.Conn, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		conn:       conn,
		log:        log,
		sleep:      clockSleeper{},
		maxRetries: maxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
