// ABOUTME: Typed errors for the Universal Booking API client
// ABOUTME: Distinguishes auth failures, booking rejections, and transport problems

package client

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an authenticated operation is attempted
// without a session. Normal UI flow should make this unreachable.
var ErrNotAuthenticated = errors.New("not authenticated: log in first")

// AuthenticationError means the server rejected the submitted credentials.
// The user must re-submit; no retry is performed.
type AuthenticationError struct {
	Detail string
}

func (e *AuthenticationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "login failed"
}

// BookingRejectedError means the server refused a booking request, typically
// validation or a time-slot conflict.
type BookingRejectedError struct {
	Detail string
}

func (e *BookingRejectedError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "booking rejected by server"
}

// TransportError wraps network-level failures (connection refused, timeout,
// canceled request) for any API call.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach booking server at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
