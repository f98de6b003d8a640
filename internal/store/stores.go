// ABOUTME: Composition root for the client-side state containers
// ABOUTME: Wires the session-to-bookings refresh subscription

package store

import (
	"context"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// Stores bundles the state containers for one client process. Each store is
// mutated only by its own operation; the only cross-store dependency is the
// booking refresh triggered by a new session, wired here as an explicit
// subscription.
type Stores struct {
	Session  *SessionStore
	Catalog  *CatalogStore
	Bookings *BookingStore
	Workflow *BookingWorkflow
}

// New builds the stores against a single API client
func New(api *client.Client) *Stores {
	s := &Stores{
		Session:  NewSessionStore(api),
		Catalog:  NewCatalogStore(api),
		Bookings: NewBookingStore(api),
	}
	s.Workflow = NewBookingWorkflow(api, s.Bookings)

	// Session transition absent -> present refreshes the booking list.
	s.Session.Subscribe(func(ctx context.Context, sess Session) {
		_ = s.Bookings.Refresh(ctx, sess)
	})

	return s
}
