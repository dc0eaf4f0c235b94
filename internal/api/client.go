// Package api wraps the remote trip-planning backend. All route planning
// and HOS-log computation happens server-side; this client only submits
// drafts, fetches trips and classifies failures into user-facing messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"hauldeck/internal/geo"
	"hauldeck/internal/trip"
)

// DefaultTimeout is the fixed client-side budget for trip API calls.
// A call that exceeds it surfaces as a connectivity failure.
const DefaultTimeout = 10 * time.Second

// Client talks to the trip backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a trip API client. A zero timeout falls back to
// DefaultTimeout; a nil logger falls back to zap.NewNop.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Create submits a draft and returns the fully planned trip, including
// server-computed route segments and daily logs. The draft is run through
// the coordinate formatter before send.
func (c *Client) Create(ctx context.Context, d trip.Draft) (*trip.Trip, error) {
	d = geo.FormatDraft(d)

	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("api: encode draft: %w", err)
	}

	var w trip.WireTrip
	if err := c.do(ctx, http.MethodPost, "/trips/create/", bytes.NewReader(body), &w); err != nil {
		return nil, err
	}
	return trip.Normalize(w)
}

// Get fetches one trip by id. A missing id yields a not-found APIError;
// callers are expected to treat that as "no such trip", not as fatal.
func (c *Client) Get(ctx context.Context, id string) (*trip.Trip, error) {
	var w trip.WireTrip
	if err := c.do(ctx, http.MethodGet, "/trips/"+id+"/", nil, &w); err != nil {
		return nil, err
	}
	return trip.Normalize(w)
}

// List fetches all trips in backend order. No client-side re-sort.
func (c *Client) List(ctx context.Context) ([]trip.Trip, error) {
	var ws []trip.WireTrip
	if err := c.do(ctx, http.MethodGet, "/trips/", nil, &ws); err != nil {
		return nil, err
	}
	return trip.NormalizeAll(ws)
}

// do performs one request and decodes a 2xx JSON body into out. Non-2xx
// statuses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("trip api unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return connectivityError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("trip api response read failed", zap.String("path", path), zap.Error(err))
		return connectivityError(err)
	}

	c.log.Debug("trip api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classify(resp.StatusCode, data)
		c.log.Info("trip api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return nil
}
