package s3store

import (
	"context"
	"errors"
	"strconv"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// translate converts an S3 SDK error into the store's error domain so the
// retry classifier can act on it. Context cancellation passes through
// untranslated: it is the caller's signal, not a store condition.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &remote.Error{
			Code:       codeFor(apiErr.ErrorCode()),
			RetryAfter: retryAfterHint(err),
			Op:         op,
			Err:        err,
		}
	}

	// The request never produced a service response.
	return &remote.Error{Code: remote.CodeNetworkFailure, Op: op, Err: err}
}

// translateBatchError converts a per-key error entry from a batch delete.
func translateBatchError(op string, e types.Error) error {
	code := ""
	if e.Code != nil {
		code = *e.Code
	}
	msg := ""
	if e.Message != nil {
		msg = *e.Message
	}
	return &remote.Error{
		Code: codeFor(code),
		Op:   op,
		Err:  &smithy.GenericAPIError{Code: code, Message: msg},
	}
}

func codeFor(s string) remote.Code {
	switch s {
	case "NoSuchKey", "NotFound", "NoSuchBucket", "NoSuchUpload":
		return remote.CodeUnknownItem
	case "SlowDown", "TooManyRequests", "RequestLimitExceeded",
		"Throttling", "ThrottlingException", "RequestThrottled":
		return remote.CodeRateLimited
	case "ServiceUnavailable", "InternalError":
		return remote.CodeServiceUnavailable
	case "OperationAborted":
		return remote.CodeZoneBusy
	case "RequestTimeout":
		return remote.CodeResponseLost
	case "AccessDenied", "AllAccessDisabled", "Forbidden":
		return remote.CodePermissionFailure
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "TokenRefreshRequired":
		return remote.CodeNotAuthenticated
	default:
		return remote.CodeUnknown
	}
}

// retryAfterHint extracts the service's Retry-After header, when present,
// so delayed retries can honor the exact pause the service asked for.
func retryAfterHint(err error) time.Duration {
	var re *awshttp.ResponseError
	if !errors.As(err, &re) || re.Response == nil {
		return 0
	}
	v := re.Response.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, perr := strconv.Atoi(v)
	if perr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
