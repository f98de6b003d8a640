// ABOUTME: HTTP client for the Universal Booking API
// ABOUTME: Wraps login, catalog, and booking calls with typed error handling

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client is the API client for the Universal Booking server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, defaultTimeout)
}

// NewWithTimeout creates a client with an explicit per-request timeout
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured server URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token represents the /token endpoint response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service represents a bookable service from the catalog
type Service struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Duration   int    `json:"duration"` // minutes
	Price      int    `json:"price"`
	BusinessID int    `json:"business_id"`
}

// Booking represents a confirmed reservation owned by the server
type Booking struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	ServiceID int    `json:"service_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

// BookingInput is the request body for creating a booking
type BookingInput struct {
	ServiceID int    `json:"service_id"`
	StartTime string `json:"start_time"`
}

// BusinessInput is the nested business record for registration
type BusinessInput struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// RegisterInput is the request body for creating a user account
type RegisterInput struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Business BusinessInput `json:"business"`
}

// User represents a registered account as returned by the server
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// errorBody is the server's error envelope
type errorBody struct {
	Detail string `json:"detail"`
}

// Login calls POST /token with form-encoded credentials.
// A rejection is returned as *AuthenticationError carrying the server detail.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthenticationError{Detail: c.readDetail(resp)}
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	if token.AccessToken == "" {
		return nil, &AuthenticationError{Detail: "server returned an empty token"}
	}

	return &token, nil
}

// ListServices calls GET /services/. No authentication required.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/services/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var services []Service
	if err := json.NewDecoder(resp.Body).Decode(&services); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}

	return services, nil
}

// MyBookings calls GET /my-bookings/ with the bearer credential
func (c *Client) MyBookings(ctx context.Context, token string) ([]Booking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/my-bookings/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var bookings []Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}

	return bookings, nil
}

// CreateBooking calls POST /bookings/ with the bearer credential.
// A rejection is returned as *BookingRejectedError carrying the server detail.
func (c *Client) CreateBooking(ctx context.Context, token string, input *BookingInput) (*Booking, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &BookingRejectedError{Detail: c.readDetail(resp)}
	}

	// The server replies with the created booking, but an empty ack is accepted.
	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		if err == io.EOF {
			return &Booking{ServiceID: input.ServiceID, StartTime: input.StartTime}, nil
		}
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}

	return &booking, nil
}

// Register calls POST /users/ to create an account with its business record
func (c *Client) Register(ctx context.Context, input *RegisterInput) (*User, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}

	return &user, nil
}

// do tags the request and converts network failures to TransportError
func (c *Client) do(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() == context.Canceled {
			return nil, &TransportError{URL: c.baseURL, Err: fmt.Errorf("request canceled")}
		}
		if req.Context().Err() == context.DeadlineExceeded {
			return nil, &TransportError{URL: c.baseURL, Err: fmt.Errorf("request timed out")}
		}
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}

	slog.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	return resp, nil
}

// readDetail extracts the server's detail message, empty if none was provided
func (c *Client) readDetail(resp *http.Response) string {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}

// statusError builds an error for a non-OK response, preferring the detail field
func (c *Client) statusError(resp *http.Response) error {
	if detail := c.readDetail(resp); detail != "" {
		return fmt.Errorf("server error: %s", detail)
	}
	return fmt.Errorf("server returned status %d", resp.StatusCode)
}
