package backup

import (
	"context"
	"time"

	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// Outcome is the bounded set of recovery actions a remote-call result can be
// classified into. Every operation in this package funnels its call results
// through Classify and acts only on the returned Outcome.
type Outcome int

const (
	// Success — the call completed normally.
	Success Outcome = iota
	// UnknownItem — the target record does not exist. For fetch-style calls
	// this is valid absence, not a failure.
	UnknownItem
	// FailureDoNotRetry — terminal; the error is not a recognized transient
	// condition or the retry budget is exhausted.
	FailureDoNotRetry
	// FailureRetryAfterDelay — transient; wait Decision.Delay, decrement the
	// budget, retry.
	FailureRetryAfterDelay
	// FailureRetryWithoutDelay — transient; decrement the budget, retry
	// immediately.
	FailureRetryWithoutDelay
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case UnknownItem:
		return "unknownItem"
	case FailureDoNotRetry:
		return "failureDoNotRetry"
	case FailureRetryAfterDelay:
		return "failureRetryAfterDelay"
	case FailureRetryWithoutDelay:
		return "failureRetryWithoutDelay"
	default:
		return "invalid"
	}
}

// defaultRetryDelay applies when a delayed-retry condition carries no
// service-supplied hint.
const defaultRetryDelay = 3 * time.Second

// Decision is the classification of one remote-call result.
type Decision struct {
	Outcome Outcome
	// Delay is set only for FailureRetryAfterDelay.
	Delay time.Duration
	// Err is set only for FailureDoNotRetry and UnknownItem; it is the error
	// that produced the decision.
	Err error
}

// Classify turns the result of a remote call into exactly one recovery
// action, given the remaining retry budget. label identifies the operation
// in diagnostics only.
//
// Precedence: a missing record is always UnknownItem, even with a spent
// budget — absence is never retried. An exhausted budget promotes every
// transient condition to FailureDoNotRetry. Errors outside the store's own
// error domain are terminal regardless of budget, since their transience
// cannot be assessed.
func Classify(ctx context.Context, err error, remaining int, label string, log logging.Logger) Decision {
	if err == nil {
		return Decision{Outcome: Success}
	}

	code, ok := remote.CodeOf(err)
	if !ok {
		log.Warn(ctx, "unclassifiable error from remote call", "op", label, "error", err)
		return Decision{Outcome: FailureDoNotRetry, Err: err}
	}

	if code == remote.CodeUnknownItem {
		return Decision{Outcome: UnknownItem, Err: err}
	}

	if remaining <= 0 {
		log.Warn(ctx, "retry budget exhausted", "op", label, "code", code.String())
		return Decision{Outcome: FailureDoNotRetry, Err: err}
	}

	switch code {
	case remote.CodeResponseLost, remote.CodeNetworkFailure, remote.CodeNetworkUnavailable:
		return Decision{Outcome: FailureRetryWithoutDelay}

	case remote.CodeRateLimited, remote.CodeServiceUnavailable, remote.CodeZoneBusy:
		delay := remote.RetryAfterOf(err)
		if delay <= 0 {
			delay = defaultRetryDelay
		}
		return Decision{Outcome: FailureRetryAfterDelay, Delay: delay}

	default:
		return Decision{Outcome: FailureDoNotRetry, Err: err}
	}
}
