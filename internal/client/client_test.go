// ABOUTME: Tests for the Universal Booking API client
// ABOUTME: Uses httptest to mock server responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			t.Errorf("expected path /token, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("username") != "ada@example.com" {
			t.Errorf("expected username ada@example.com, got %s", r.PostForm.Get("username"))
		}
		if r.PostForm.Get("password") != "hunter2" {
			t.Errorf("expected password hunter2, got %s", r.PostForm.Get("password"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Token{AccessToken: "tok123", TokenType: "bearer"})
	}))
	defer server.Close()

	c := New(server.URL)
	token, err := c.Login(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken != "tok123" {
		t.Errorf("expected token tok123, got %s", token.AccessToken)
	}
}

func TestLogin_RejectedWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T", err)
	}
	if authErr.Error() != "bad credentials" {
		t.Errorf("expected server detail to be surfaced, got %q", authErr.Error())
	}
}

func TestLogin_RejectedWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T", err)
	}
	if authErr.Error() != "login failed" {
		t.Errorf("expected generic fallback message, got %q", authErr.Error())
	}
}

func TestLogin_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "hunter2")
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Errorf("expected TransportError, got %T", err)
	}
}

func TestListServices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/" {
			t.Errorf("expected path /services/, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no auth header, got %s", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Service{
			{ID: 1, Name: "Yoga", Duration: 60, Price: 20},
			{ID: 2, Name: "Massage", Duration: 30, Price: 40},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	services, err := c.ListServices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services[0].Name != "Yoga" {
		t.Errorf("expected Yoga, got %s", services[0].Name)
	}
}

func TestMyBookings_BearerCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/my-bookings/" {
			t.Errorf("expected path /my-bookings/, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("expected bearer credential, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Booking{
			{ID: 9, ServiceID: 1, StartTime: "2026-03-01T10:00:00"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	bookings, err := c.MyBookings(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	if bookings[0].StartTime != "2026-03-01T10:00:00" {
		t.Errorf("unexpected start time %s", bookings[0].StartTime)
	}
}

func TestCreateBooking_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/" {
			t.Errorf("expected path /bookings/, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("expected bearer credential, got %q", auth)
		}
		var input BookingInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if input.ServiceID != 1 || input.StartTime != "2026-03-01T10:00:00" {
			t.Errorf("unexpected input %+v", input)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Booking{ID: 9, ServiceID: 1, StartTime: input.StartTime})
	}))
	defer server.Close()

	c := New(server.URL)
	booking, err := c.CreateBooking(context.Background(), "tok123", &BookingInput{ServiceID: 1, StartTime: "2026-03-01T10:00:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID != 9 {
		t.Errorf("expected booking id 9, got %d", booking.ID)
	}
}

func TestCreateBooking_EmptyAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL)
	booking, err := c.CreateBooking(context.Background(), "tok123", &BookingInput{ServiceID: 2, StartTime: "2026-03-01T10:00:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ServiceID != 2 {
		t.Errorf("expected echoed service id 2, got %d", booking.ServiceID)
	}
}

func TestCreateBooking_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Time slot already booked"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateBooking(context.Background(), "tok123", &BookingInput{ServiceID: 1, StartTime: "2026-03-01T10:00:00"})

	var rejected *BookingRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected BookingRejectedError, got %T", err)
	}
	if rejected.Error() != "Time slot already booked" {
		t.Errorf("expected server detail to be surfaced, got %q", rejected.Error())
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/" {
			t.Errorf("expected path /users/, got %s", r.URL.Path)
		}
		var input RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if input.Business.Name != "Lakeside Studio" {
			t.Errorf("unexpected business %+v", input.Business)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: 3, Email: input.Email, IsActive: true})
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Register(context.Background(), &RegisterInput{
		Email:    "ada@example.com",
		Password: "hunter2",
		Business: BusinessInput{Name: "Lakeside Studio", Industry: "wellness"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 || !user.IsActive {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode([]Service{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.ListServices(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode([]Service{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ListServices(ctx)
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}
