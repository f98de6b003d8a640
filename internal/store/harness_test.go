// ABOUTME: Fake booking server for store tests
// ABOUTME: Records call counts and ordering to verify synchronization rules

package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// fakeServer is a scripted booking API for store tests
type fakeServer struct {
	mu       sync.Mutex
	services []client.Service
	bookings []client.Booking
	nextID   int

	rejectLogin  string // when set, /token fails with this detail
	rejectCreate string // when set, /bookings/ fails with this detail
	failBookings bool   // when set, /my-bookings/ returns 500
	failServices bool   // when set, /services/ returns 500

	calls map[string]int
	order []string

	srv *httptest.Server
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	f := &fakeServer{
		nextID: 9,
		calls:  map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.order = append(f.order, r.URL.Path)
	rejectLogin := f.rejectLogin
	rejectCreate := f.rejectCreate
	failBookings := f.failBookings
	failServices := f.failServices
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/token":
		if rejectLogin != "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": rejectLogin})
			return
		}
		json.NewEncoder(w).Encode(client.Token{AccessToken: "tok123", TokenType: "bearer"})

	case "/services/":
		if failServices {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.services)

	case "/my-bookings/":
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		if failBookings {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.bookings == nil {
			json.NewEncoder(w).Encode([]client.Booking{})
			return
		}
		json.NewEncoder(w).Encode(f.bookings)

	case "/bookings/":
		if rejectCreate != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": rejectCreate})
			return
		}
		var input client.BookingInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		f.mu.Lock()
		booking := client.Booking{ID: f.nextID, ServiceID: input.ServiceID, StartTime: input.StartTime}
		f.nextID++
		f.bookings = append(f.bookings, booking)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(booking)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// callCount returns how many requests hit the given path
func (f *fakeServer) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// callOrder returns the request paths in arrival order
func (f *fakeServer) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// newStores builds stores against the fake server
func (f *fakeServer) newStores() *Stores {
	return New(client.New(f.srv.URL))
}
