package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means the turn carries no access token.
	ErrUnauthenticated = errors.New("no access token linked")
	// ErrAuthRejected means the remote API refused the access token.
	ErrAuthRejected = errors.New("remote rejected credentials")
	// ErrRemoteService covers every other remote API failure.
	ErrRemoteService = errors.New("remote service failure")
	// ErrDeviceFetch is reported to telemetry when the device list cannot be read.
	// The turn continues without a device.
	ErrDeviceFetch = errors.New("device fetch failed")
)

// UnresolvedSlotError is returned when a slot value matches no catalogue entry.
type UnresolvedSlotError struct {
	Slot string
}

func (e *UnresolvedSlotError) Error() string {
	return fmt.Sprintf("slot %q did not resolve", e.Slot)
}

// RemoteError is a failed call to the remote music API.
// Status is zero when no response was received.
type RemoteError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is reports 401 and 403 as ErrAuthRejected and everything else as ErrRemoteService.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrAuthRejected:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrRemoteService:
		return e.Status != http.StatusUnauthorized && e.Status != http.StatusForbidden
	}
	return false
}
