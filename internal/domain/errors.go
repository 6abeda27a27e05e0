package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the gtship domain.
// These errors are returned by the public API and can be checked with errors.Is.
// None of them ever reaches a Callback; callbacks only see success or failure.
var (
	// ErrEncoding is returned when a fix cannot be turned into a request URL.
	ErrEncoding = errors.New("gtship: encoding error")

	// ErrTransport wraps network-level failures (DNS, refused, timeout).
	ErrTransport = errors.New("gtship: transport error")

	// ErrUnexpectedStatus is returned when the collector answers anything but 200.
	ErrUnexpectedStatus = errors.New("gtship: unexpected status")

	// ErrQueueFull is returned when the dispatcher has no room for another job.
	ErrQueueFull = errors.New("gtship: dispatch queue full")

	// ErrDispatcherStopped is used to fail jobs still queued when the dispatcher stops.
	ErrDispatcherStopped = errors.New("gtship: dispatcher stopped")

	// ErrMissingDeviceID is returned when an identity has no device id.
	ErrMissingDeviceID = errors.New("gtship: device id is required")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("gtship: already running")

	// ErrNotRunning is returned when Stop() or Submit() is called on a stopped instance.
	ErrNotRunning = errors.New("gtship: not running")

	// ErrWorkerBusy is returned by Start while a worker abandoned by a
	// timed-out Stop has not exited yet.
	ErrWorkerBusy = errors.New("gtship: previous worker still running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("gtship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("gtship: invalid configuration")
)

// StatusError is a protocol-level failure: the collector answered with a
// status other than 200. Body is kept for diagnostics only.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
