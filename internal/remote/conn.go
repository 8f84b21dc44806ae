package remote

import "context"

// AccountStatus is the store's account/session state as reported by
// AccountStatus queries.
type AccountStatus int

const (
	StatusAvailable AccountStatus = iota
	StatusCouldNotDetermine
	StatusNoAccount
	StatusRestricted
)

func (s AccountStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusCouldNotDetermine:
		return "couldNotDetermine"
	case StatusNoAccount:
		return "noAccount"
	case StatusRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Conn is a connection to the remote record store. Implementations translate
// transport and service failures into *Error values so callers can classify
// them; any other error type is treated as unclassifiable and terminal.
type Conn interface {
	// SaveRecord creates or overwrites the record under name.
	SaveRecord(ctx context.Context, name, recordType string, payload []byte, opts SaveOptions) error

	// DeleteRecords removes a batch of records by name. Implementations
	// report a missing record as CodeUnknownItem.
	DeleteRecords(ctx context.Context, names []string) error

	// FetchRecord retrieves one record with the given field projection.
	// A missing record is reported as CodeUnknownItem, never as a nil
	// record with nil error.
	FetchRecord(ctx context.Context, name string, proj Projection) (*Record, error)

	// QueryRecords returns one page of records of recordType, resuming from
	// cursor (nil for the first page).
	QueryRecords(ctx context.Context, recordType string, cursor *Cursor) (*Page, error)

	// AccountStatus reports the account/session state. A non-nil error means
	// the state could not be queried at all.
	AccountStatus(ctx context.Context) (AccountStatus, error)

	// LongLivedOperations enumerates operations registered by this or a
	// previous process instance.
	LongLivedOperations(ctx context.Context) ([]Operation, error)

	// CancelOperation cancels one long-lived operation.
	CancelOperation(ctx context.Context, op Operation) error
}
