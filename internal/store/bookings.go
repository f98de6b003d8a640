// ABOUTME: In-memory snapshot of the authenticated user's bookings
// ABOUTME: Replaced wholesale on refresh; inert without a session

package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// BookingStore holds the user's booking list. Each refresh replaces the list
// wholesale so it matches server state exactly; there is no merging.
type BookingStore struct {
	mu       sync.RWMutex
	api      *client.Client
	bookings []client.Booking
}

// NewBookingStore creates an empty booking store
func NewBookingStore(api *client.Client) *BookingStore {
	return &BookingStore{api: api}
}

// Refresh fetches the user's bookings with the session credential. Without a
// credential it is a no-op and issues no network call. On failure the prior
// snapshot is left untouched and the error is logged; the caller may surface
// it but should not treat it as blocking.
func (b *BookingStore) Refresh(ctx context.Context, sess Session) error {
	if sess.Token == "" {
		return nil
	}

	bookings, err := b.api.MyBookings(ctx, sess.Token)
	if err != nil {
		slog.Warn("booking refresh failed, keeping last known snapshot", "error", err)
		return err
	}

	b.mu.Lock()
	b.bookings = bookings
	b.mu.Unlock()

	slog.Debug("booking list refreshed", "bookings", len(bookings))
	return nil
}

// Bookings returns the last known-good snapshot
func (b *BookingStore) Bookings() []client.Booking {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bookings
}
