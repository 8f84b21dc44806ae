// Package names builds and parses the record names used by the backup
// client. The record type constant and the role suffixes below are part of
// the on-the-wire naming contract and must not change between versions, or
// previously written records become unreachable.
package names

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// RecordType is the single record type this client reads and writes.
const RecordType = "backupRecord"

// Role suffixes. A full record name is "<recipientId>-<role>[-<suffix>]".
const (
	ManifestSuffix       = "manifest"
	PersistentFilePrefix = "persistentFile-"
	EphemeralFilePrefix  = "ephemeralFile-"
	TestFilePrefix       = "test-"
)

// recipientPattern matches the recipient prefix at the start of a record
// name: a leading '+', one or more digits, then '-'. Names that do not match
// cannot be attributed to any recipient.
var recipientPattern = regexp.MustCompile(`^(\+\d+)-`)

// PrefixFor returns the name prefix scoping records to one recipient.
func PrefixFor(recipientID string) string {
	return recipientID + "-"
}

// ManifestName returns the name of the recipient's single manifest record.
func ManifestName(recipientID string) string {
	return PrefixFor(recipientID) + ManifestSuffix
}

// PersistentFileName returns the name for a create-once persistent file
// record. There is at most one per (recipient, fileID).
func PersistentFileName(recipientID, fileID string) string {
	return PrefixFor(recipientID) + PersistentFilePrefix + fileID
}

// EphemeralFileName returns a fresh, globally unique name for an ephemeral
// file record. Every export attempt gets a new one; names are never reused.
func EphemeralFileName(recipientID string) string {
	return PrefixFor(recipientID) + EphemeralFilePrefix + uuid.NewString()
}

// TestFileName returns a fresh name for a diagnostic test record.
func TestFileName(recipientID string) string {
	return PrefixFor(recipientID) + TestFilePrefix + uuid.NewString()
}

// IsManifest reports whether name denotes a manifest record.
func IsManifest(name string) bool {
	return strings.HasSuffix(name, ManifestSuffix)
}

// ExtractRecipientID recovers the owning recipient id from a record name.
// The second return is false when the name does not begin with a valid
// recipient prefix; such names are excluded from recipient-scoped
// aggregation.
func ExtractRecipientID(name string) (string, bool) {
	m := recipientPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}
