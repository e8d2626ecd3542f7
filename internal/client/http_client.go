package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workoutadmin/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Client talks JSON to the workouts API
type Client struct {
	http       *http.Client
	baseURL    string
	token      string
	maxRetries uint64
	interval   time.Duration // first retry delay
}

// New creates a client from the API section of the config
func New(cfg config.APICfg) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxRetries: cfg.MaxRetries,
		interval:   200 * time.Millisecond,
	}
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// get retries transient failures (transport errors, 429, 5xx) with backoff
func (c *Client) get(ctx context.Context, path string, out any) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)

	op := func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		var ae *APIError
		if errors.As(err, &ae) && ae.StatusCode != http.StatusTooManyRequests && ae.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("path", path).Dur("retry_in", wait).Msg("api request failed, retrying")
	}
	return backoff.RetryNotify(op, policy, notify)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().Str("method", method).Str("url", url).Msg("making API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().Int("status_code", resp.StatusCode).Int("body_length", len(raw)).Msg("received API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return &APIError{StatusCode: status, Detail: body.Detail}
	}
	detail := strings.TrimSpace(string(raw))
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Detail: detail}
}
