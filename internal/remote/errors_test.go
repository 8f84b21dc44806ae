package remote

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	rerr := &Error{Code: CodeRateLimited, Op: "save"}

	code, ok := CodeOf(rerr)
	require.True(t, ok)
	assert.Equal(t, CodeRateLimited, code)

	// wrapped errors still resolve
	code, ok = CodeOf(fmt.Errorf("save mybackup: %w", rerr))
	require.True(t, ok)
	assert.Equal(t, CodeRateLimited, code)

	_, ok = CodeOf(errors.New("some transport error"))
	assert.False(t, ok)

	_, ok = CodeOf(nil)
	assert.False(t, ok)
}

func TestIsUnknownItem(t *testing.T) {
	assert.True(t, IsUnknownItem(&Error{Code: CodeUnknownItem, Op: "fetch"}))
	assert.False(t, IsUnknownItem(&Error{Code: CodeNetworkFailure, Op: "fetch"}))
	assert.False(t, IsUnknownItem(errors.New("unknown item")))
}

func TestRetryAfterOf(t *testing.T) {
	hint := 7 * time.Second
	assert.Equal(t, hint, RetryAfterOf(&Error{Code: CodeRateLimited, RetryAfter: hint}))
	assert.Zero(t, RetryAfterOf(&Error{Code: CodeRateLimited}))
	assert.Zero(t, RetryAfterOf(errors.New("nope")))
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("tcp reset")
	rerr := &Error{Code: CodeNetworkFailure, Op: "query", Err: cause}

	assert.ErrorIs(t, rerr, cause)
	assert.Contains(t, rerr.Error(), "query")
	assert.Contains(t, rerr.Error(), "networkFailure")
}
