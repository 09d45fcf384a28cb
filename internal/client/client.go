// Package client is a typed HTTP client for the workout tracker API together
// with the local session file used by the command-line client.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/WorkoutTracker/internal/models"
)

const (
	apiSignup   = "/api/user/signup"
	apiLogin    = "/api/user/login"
	apiWorkouts = "/api/workouts"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode  int
	Message     string
	EmptyFields []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	if len(e.EmptyFields) > 0 {
		msg += " (missing: " + strings.Join(e.EmptyFields, ", ") + ")"
	}
	return msg
}

// Client talks to a workout tracker server.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	// Token is sent as a bearer token on workout requests.
	Token string
}

// New returns a Client for baseURL with a 10 second request timeout.
func New(baseURL, token string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

// NewHTTPClient builds an http.Client that trusts only the CA certificate in
// caFile. An empty caFile yields the default transport.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    caPool,
			MinVersion: tls.VersionTLS12,
		},
	}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}, nil
}

// Signup creates an account and returns the issued token.
func (c *Client) Signup(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, apiSignup, models.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a fresh token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, apiLogin, models.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListWorkouts returns the caller's workouts, newest first.
func (c *Client) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.do(ctx, http.MethodGet, apiWorkouts, nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout fetches a single workout by id.
func (c *Client) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return c.workout(ctx, http.MethodGet, id, nil)
}

// CreateWorkout records a new workout and returns it with its server id.
func (c *Client) CreateWorkout(ctx context.Context, in models.WorkoutInput) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, http.MethodPost, apiWorkouts, in, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkout sends the non-nil fields of patch and returns the updated record.
func (c *Client) UpdateWorkout(ctx context.Context, id string, patch models.WorkoutPatch) (*models.Workout, error) {
	return c.workout(ctx, http.MethodPatch, id, patch)
}

// DeleteWorkout removes a workout and returns the deleted record.
func (c *Client) DeleteWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return c.workout(ctx, http.MethodDelete, id, nil)
}

func (c *Client) workout(ctx context.Context, method, id string, body any) (*models.Workout, error) {
	var w models.Workout
	if err := c.do(ctx, method, apiWorkouts+"/"+url.PathEscape(id), body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error       string   `json:"error"`
		EmptyFields []string `json:"emptyFields"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.EmptyFields = body.EmptyFields
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
