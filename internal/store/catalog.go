// ABOUTME: In-memory cache of the bookable service catalog
// ABOUTME: Loaded once at startup; resolves booking display names with fallbacks

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// CatalogUnavailableError means the service list could not be fetched. It is
// non-fatal: the client stays usable and falls back to placeholder names.
type CatalogUnavailableError struct {
	Err error
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("service catalog unavailable: %v", e.Err)
}

func (e *CatalogUnavailableError) Unwrap() error {
	return e.Err
}

// CatalogStore holds the read-only snapshot of bookable services. The catalog
// does not require a session and is never re-fetched after a successful load.
type CatalogStore struct {
	mu       sync.RWMutex
	api      *client.Client
	services []client.Service
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore(api *client.Client) *CatalogStore {
	return &CatalogStore{api: api}
}

// Load fetches the catalog and replaces the snapshot wholesale. On failure
// the catalog stays empty and the error is logged; callers should not treat
// it as blocking.
func (c *CatalogStore) Load(ctx context.Context) error {
	services, err := c.api.ListServices(ctx)
	if err != nil {
		wrapped := &CatalogUnavailableError{Err: err}
		slog.Warn("catalog load failed, falling back to placeholder names", "error", err)
		return wrapped
	}

	c.mu.Lock()
	c.services = services
	c.mu.Unlock()

	slog.Info("catalog loaded", "services", len(services))
	return nil
}

// Services returns the current snapshot
func (c *CatalogStore) Services() []client.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services
}

// ServiceName resolves a service id to its display name. Unknown ids degrade
// to a placeholder containing the id, never an error, so bookings render even
// when the catalog is missing or stale.
func (c *CatalogStore) ServiceName(id int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, svc := range c.services {
		if svc.ID == id {
			return svc.Name
		}
	}
	return fmt.Sprintf("Service #%d (unknown)", id)
}
