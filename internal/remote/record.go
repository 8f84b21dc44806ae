// Package remote defines the data model and connection interface for the
// key-addressed remote record store, plus the error domain its
// implementations must translate transport failures into.
package remote

import "io"

// Record is a named, typed unit of storage carrying a single binary payload.
//
// Payload is non-nil only when the record was fetched with FullRecord
// projection and the store returned a payload; the caller owns closing it.
type Record struct {
	Name    string
	Type    string
	Size    int64
	Payload io.ReadCloser
}

// Projection selects which fields a fetch should return.
type Projection int

const (
	// MetadataOnly fetches no payload keys; used for existence checks.
	MetadataOnly Projection = iota
	// FullRecord fetches all keys including the payload.
	FullRecord
)

// Cursor is an opaque continuation token for a paginated query. A nil
// *Cursor means "no more pages".
type Cursor string

// Page is one page of a paginated query result. Names preserves the order
// the store returned the records in.
type Page struct {
	Names  []string
	Cursor *Cursor
}

// SaveOptions shapes how a save request is issued to the store.
type SaveOptions struct {
	// Atomic requests all-or-nothing semantics for the batch. Backup saves
	// are single-record and set this to false.
	Atomic bool
	// LongLived registers the operation with the store so it survives
	// process suspension and can be found again after a restart.
	LongLived bool
	// Background marks the request as low priority.
	Background bool
}

// Operation identifies a long-lived operation registered with the store.
type Operation struct {
	ID   string
	Name string
}
