// Package common defines shared constants and sentinel errors used across
// backupsync components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Read-path errors.
	ErrorNotFound        = errors.New("record not found")
	ErrorInvalidResponse = errors.New("invalid response from remote store")

	// Write-path errors.
	ErrorNothingToUpload = errors.New("nothing to upload")

	// Availability errors. Each one maps to a distinct remediation message
	// rendered by the caller, so they must stay separate values.
	ErrorAccountCheckFailed   = errors.New("account status check failed")
	ErrorAccountIndeterminate = errors.New("account status could not be determined")
	ErrorNoAccount            = errors.New("no account for remote store")
	ErrorAccountRestricted    = errors.New("account access restricted")
)
