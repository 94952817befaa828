package downloader

import (
	"errors"
	"strings"
)

// The transient whitelist is deliberately explicit: only failures on
// this list are worth retrying the whole collection for. Everything
// else either needs user action or will fail again identically.
var transientMarkers = []string{
	"incomplete data received",
	"content too short",
	"timed out",
	"timeout",
	"connection reset",
	"unexpected eof",
	"got error: eof",
	"http error 5",
	"fragment not found",
}

var unavailableMarkers = []string{
	"video unavailable",
	"private video",
	"this video is unavailable",
	"members-only",
	"blocked in your country",
	"account associated with this video has been terminated",
}

var invalidInputMarkers = []string{
	"is not a valid url",
	"unsupported url",
	"requested format is not available",
	"invalid quality",
}

// Classify maps a raw engine error into the job taxonomy. Errors that
// already carry a JobError keep their code.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var jobErr *JobError
	if errors.As(err, &jobErr) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case matchesAny(msg, unavailableMarkers):
		return NewJobError(ErrorCodeUnavailable, op, err)
	case matchesAny(msg, invalidInputMarkers):
		return NewJobError(ErrorCodeInvalidInput, op, err)
	case matchesAny(msg, transientMarkers):
		return NewJobError(ErrorCodeNetwork, op, err)
	default:
		return NewJobError(ErrorCodeDownloadFailed, op, err)
	}
}

// IsTransient reports whether err is on the retry whitelist.
func IsTransient(err error) bool {
	return CodeOf(err) == ErrorCodeNetwork
}

func matchesAny(msg string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
