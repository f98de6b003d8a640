// ABOUTME: Booking creation workflow with an explicit attempt state machine
// ABOUTME: Sequences the create call strictly before the list refresh

package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// Phase is the state of a single booking-creation attempt
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseConfirmed
	PhaseRejected
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// BookingWorkflow orchestrates booking creation. After Create returns nil the
// booking list is consistent with the server: the refresh runs inside the
// workflow, strictly after the create call completes.
type BookingWorkflow struct {
	mu       sync.Mutex
	api      *client.Client
	bookings *BookingStore
	phase    Phase
}

// NewBookingWorkflow creates a workflow bound to the given booking store
func NewBookingWorkflow(api *client.Client, bookings *BookingStore) *BookingWorkflow {
	return &BookingWorkflow{api: api, bookings: bookings}
}

// Phase returns the current attempt phase
func (w *BookingWorkflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

func (w *BookingWorkflow) setPhase(p Phase) {
	w.mu.Lock()
	w.phase = p
	w.mu.Unlock()
}

// Create submits a new booking. Without a session it fails immediately with
// client.ErrNotAuthenticated and issues no network call. The start time is
// validated only for non-emptiness; malformed timestamps are rejected by the
// server and surfaced as *client.BookingRejectedError. A refresh failure
// after a confirmed creation is logged but does not fail the attempt, since
// the mutation itself succeeded.
func (w *BookingWorkflow) Create(ctx context.Context, sess Session, serviceID int, startTime string) error {
	if sess.Token == "" {
		return client.ErrNotAuthenticated
	}
	if strings.TrimSpace(startTime) == "" {
		return &client.BookingRejectedError{Detail: "start time is required"}
	}

	w.setPhase(PhaseSubmitting)

	booking, err := w.api.CreateBooking(ctx, sess.Token, &client.BookingInput{
		ServiceID: serviceID,
		StartTime: startTime,
	})
	if err != nil {
		w.setPhase(PhaseRejected)
		w.setPhase(PhaseIdle)
		return err
	}

	w.setPhase(PhaseConfirmed)
	slog.Info("booking confirmed", "booking_id", booking.ID, "service_id", serviceID, "start_time", startTime)

	if err := w.bookings.Refresh(ctx, sess); err != nil {
		slog.Warn("refresh after confirmed booking failed, display may lag", "error", err)
	}

	w.setPhase(PhaseIdle)
	return nil
}
