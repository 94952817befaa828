package downloader

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ErrorCodeInvalidInput covers malformed or unsupported URLs and
	// quality selectors. Never retried.
	ErrorCodeInvalidInput ErrorCode = "invalid_input"
	// ErrorCodeUnavailable covers private, deleted or region-locked
	// media. Never retried.
	ErrorCodeUnavailable ErrorCode = "unavailable"
	// ErrorCodeNetwork covers the transient whitelist: incomplete
	// data, socket/fragment timeouts. Eligible for retry.
	ErrorCodeNetwork ErrorCode = "network"
	// ErrorCodeRetryExhausted tags a transient failure that survived
	// every configured attempt.
	ErrorCodeRetryExhausted ErrorCode = "retry_exhausted"
	ErrorCodeWorkspace      ErrorCode = "workspace"
	ErrorCodeDownloadFailed ErrorCode = "download_failed"
)

type JobError struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *JobError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

func NewJobError(code ErrorCode, op string, err error) error {
	return &JobError{Code: code, Op: op, Err: err}
}

// CodeOf extracts the taxonomy code from an error chain, or
// ErrorCodeDownloadFailed for errors outside the taxonomy.
func CodeOf(err error) ErrorCode {
	var jobErr *JobError
	if errors.As(err, &jobErr) {
		return jobErr.Code
	}
	return ErrorCodeDownloadFailed
}
