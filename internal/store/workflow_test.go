// ABOUTME: Tests for the booking creation workflow
// ABOUTME: Covers guards, sequencing, and the full round-trip scenario

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

func TestCreate_WithoutSessionFailsWithoutNetworkCall(t *testing.T) {
	f := newFakeServer(t)
	stores := f.newStores()

	err := stores.Workflow.Create(context.Background(), Session{}, 1, "2026-03-01T10:00:00")
	require.ErrorIs(t, err, client.ErrNotAuthenticated)

	assert.Equal(t, 0, f.callCount("/bookings/"))
	assert.Equal(t, 0, f.callCount("/my-bookings/"))
}

func TestCreate_EmptyStartTimeFailsWithoutNetworkCall(t *testing.T) {
	f := newFakeServer(t)
	stores := f.newStores()
	sess := Session{Token: "tok123"}

	err := stores.Workflow.Create(context.Background(), sess, 1, "   ")
	var rejected *client.BookingRejectedError
	require.ErrorAs(t, err, &rejected)

	assert.Equal(t, 0, f.callCount("/bookings/"))
}

func TestCreate_RefreshSequencedAfterCreate(t *testing.T) {
	f := newFakeServer(t)
	stores := f.newStores()
	sess := Session{Token: "tok123"}

	require.NoError(t, stores.Workflow.Create(context.Background(), sess, 1, "2026-03-01T10:00:00"))

	order := f.callOrder()
	require.Equal(t, []string{"/bookings/", "/my-bookings/"}, order,
		"the list refresh must run strictly after the create completes")

	// The caller can rely on the list matching the server when Create returns.
	bookings := stores.Bookings.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, "2026-03-01T10:00:00", bookings[0].StartTime)
}

func TestCreate_RejectedSurfacesServerDetail(t *testing.T) {
	f := newFakeServer(t)
	f.rejectCreate = "Time slot already booked"
	stores := f.newStores()
	sess := Session{Token: "tok123"}

	err := stores.Workflow.Create(context.Background(), sess, 1, "2026-03-01T10:00:00")

	var rejected *client.BookingRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Time slot already booked", rejected.Error())
	assert.Equal(t, 0, f.callCount("/my-bookings/"), "no refresh after a rejected create")
	assert.Equal(t, PhaseIdle, stores.Workflow.Phase(), "rejection returns to idle")
}

func TestCreate_RefreshFailureStillReportsSuccess(t *testing.T) {
	f := newFakeServer(t)
	f.failBookings = true
	stores := f.newStores()
	sess := Session{Token: "tok123"}

	err := stores.Workflow.Create(context.Background(), sess, 1, "2026-03-01T10:00:00")
	require.NoError(t, err, "the mutation succeeded; only the display may lag")
	assert.Empty(t, stores.Bookings.Bookings())
}

func TestRoundTrip(t *testing.T) {
	f := newFakeServer(t)
	f.services = []client.Service{{ID: 1, Name: "Yoga", Duration: 60}}
	stores := f.newStores()

	require.NoError(t, stores.Catalog.Load(context.Background()))

	sess, err := stores.Session.Login(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok123", sess.Token)
	assert.Empty(t, stores.Bookings.Bookings(), "no bookings before creation")

	require.NoError(t, stores.Workflow.Create(context.Background(), sess, 1, "2026-03-01T10:00:00"))

	bookings := stores.Bookings.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, 9, bookings[0].ID)
	assert.Equal(t, 1, bookings[0].ServiceID)
	assert.Equal(t, "2026-03-01T10:00:00", bookings[0].StartTime)
	assert.Equal(t, "Yoga", stores.Catalog.ServiceName(bookings[0].ServiceID))
}
