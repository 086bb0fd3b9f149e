package veo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout is returned when the poll budget is exhausted before the
// upstream operation reports done. The upstream job may still be running.
var ErrTimeout = errors.New("video generation timed out")

// AuthError means no bearer token could be obtained. Hard stop for both
// submission and status checks.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("veo authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// SubmitError means the predictLongRunning call was rejected or returned
// a malformed response.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("veo submission failed: status %d: %s", e.StatusCode, e.Body)
}

// ContentViolationError is a terminal refusal by the upstream safety
// filter. Distinct from a generic failure so callers can persist the
// content_violation status instead of failed.
type ContentViolationError struct {
	Reasons       []string
	FilteredCount int
}

func (e *ContentViolationError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("content policy violation: %d output(s) filtered", e.FilteredCount)
	}
	return fmt.Sprintf("content policy violation: %s", strings.Join(e.Reasons, "; "))
}

// ErrNoOutput marks an operation that reported done without carrying a
// video payload. The artifact may still exist at the staging prefix the
// job was submitted with, so callers probe the bucket before failing.
var ErrNoOutput = errors.New("no video data found in completed operation")

// IsContentViolation reports whether err wraps a safety-filter refusal.
func IsContentViolation(err error) bool {
	var cv *ContentViolationError
	return errors.As(err, &cv)
}
