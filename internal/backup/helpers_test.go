package backup

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// fakeConn is a scriptable remote.Conn. Unset behaviors fall through to the
// embedded nil interface and panic, which keeps tests honest about which
// calls they expect.
type fakeConn struct {
	remote.Conn

	saveFn   func(ctx context.Context, name, recordType string, payload []byte, opts remote.SaveOptions) error
	deleteFn func(ctx context.Context, names []string) error
	fetchFn  func(ctx context.Context, name string, proj remote.Projection) (*remote.Record, error)
	queryFn  func(ctx context.Context, recordType string, cursor *remote.Cursor) (*remote.Page, error)
	statusFn func(ctx context.Context) (remote.AccountStatus, error)
	opsFn    func(ctx context.Context) ([]remote.Operation, error)
	cancelFn func(ctx context.Context, op remote.Operation) error
}

func (f *fakeConn) SaveRecord(ctx context.Context, name, recordType string, payload []byte, opts remote.SaveOptions) error {
	return f.saveFn(ctx, name, recordType, payload, opts)
}

func (f *fakeConn) DeleteRecords(ctx context.Context, names []string) error {
	return f.deleteFn(ctx, names)
}

func (f *fakeConn) FetchRecord(ctx context.Context, name string, proj remote.Projection) (*remote.Record, error) {
	return f.fetchFn(ctx, name, proj)
}

func (f *fakeConn) QueryRecords(ctx context.Context, recordType string, cursor *remote.Cursor) (*remote.Page, error) {
	return f.queryFn(ctx, recordType, cursor)
}

func (f *fakeConn) AccountStatus(ctx context.Context) (remote.AccountStatus, error) {
	return f.statusFn(ctx)
}

func (f *fakeConn) LongLivedOperations(ctx context.Context) ([]remote.Operation, error) {
	return f.opsFn(ctx)
}

func (f *fakeConn) CancelOperation(ctx context.Context, op remote.Operation) error {
	return f.cancelFn(ctx, op)
}

// fakeSleeper records requested delays instead of sleeping.
type fakeSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *fakeSleeper) slept() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(conn remote.Conn) (*Client, *fakeSleeper) {
	s := &fakeSleeper{}
	return NewClient(conn, discardLogger(), WithSleeper(s)), s
}

func notFoundErr(op string) error {
	return &remote.Error{Code: remote.CodeUnknownItem, Op: op}
}

func rateLimitedErr(after time.Duration) error {
	return &remote.Error{Code: remote.CodeRateLimited, RetryAfter: after, Op: "call"}
}

func networkErr() error {
	return &remote.Error{Code: remote.CodeNetworkFailure, Op: "call"}
}
