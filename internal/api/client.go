package api

// Package api is the HR API client: one transport core plus the auth surface
// and a generic per-collection resource client. Every request carries the
// bearer token, declares a JSON response expectation, and is tagged with a
// request ID for log correlation.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote HR API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Options groups dependencies for Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://127.0.0.1:8000/api".
	BaseURL string
	// HTTPClient is optional and defaults to a 30s-timeout client.
	HTTPClient *http.Client
	// Logger is optional; a nil logger discards request logs.
	Logger *slog.Logger
}

// NewClient constructs a new API client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do issues one API request and classifies the outcome into the failure
// taxonomy. On success the returned envelope has ok() == true.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (envelope, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, &TransportError{Err: err}
	}

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var env envelope
	if len(raw) > 0 {
		// A malformed body on an error status is still classified below;
		// on a success status it is a failure in its own right.
		if unmarshalErr := json.Unmarshal(raw, &env); unmarshalErr != nil && resp.StatusCode < http.StatusBadRequest {
			return envelope{}, fmt.Errorf("decode response: %w", unmarshalErr)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return envelope{}, &AuthError{StatusCode: resp.StatusCode, Message: env.Message}
	case len(env.Errors) > 0:
		return envelope{}, &ValidationError{Message: env.Message, Fields: env.Errors}
	case resp.StatusCode >= http.StatusBadRequest || !env.ok():
		return envelope{}, &DomainError{Message: env.Message}
	}

	return env, nil
}

// decodeData unmarshals the envelope payload into out, tolerating an absent
// payload (some mutation responses return only a message).
func decodeData(env envelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
