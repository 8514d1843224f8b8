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

	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

const (
	UserAgent      = "venue-slots/1.0 (github.com/pfrederiksen/venue-slots)"
	DefaultTimeout = 30 * time.Second

	// maxBodySize bounds how much of a response is read
	maxBodySize = 32 << 20
)

// Client talks to the scraping backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL (for example http://localhost:8010/api).
// A non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Result is the outcome of a successful FetchSlots call
type Result struct {
	Slots []slot.Slot
	// TotalCount is the backend's total_count, or -1 when it was not sent
	TotalCount int
	// Skipped counts records in data that were not JSON objects
	Skipped int
}

// FetchSlots queries GET /data with the filter and returns the normalized slots.
// See the package documentation for how failures are reported.
func (c *Client) FetchSlots(ctx context.Context, f filter.Filter) ([]slot.Slot, error) {
	result, err := c.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return result.Slots, nil
}

// Fetch is FetchSlots with the response metadata
func (c *Client) Fetch(ctx context.Context, f filter.Filter) (*Result, error) {
	start := time.Now()
	logger.IncrCounter("api.fetch")

	reqURL := c.baseURL + "/data"
	if q := f.Query(); len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	logger.Debug("Fetching slots", logger.Fields{
		"url": reqURL,
	})

	body, err := c.do(ctx, http.MethodGet, reqURL)
	logger.RecordTiming("api.fetch", time.Since(start))
	if err != nil {
		logger.IncrCounter("api.errors")
		return nil, err
	}

	result, err := decodeData(body)
	if err != nil {
		logger.IncrCounter("api.errors")
		return nil, err
	}

	if result.Skipped > 0 {
		logger.Warn("Skipped malformed slot records", logger.Fields{
			"skipped": result.Skipped,
		})
	}
	logger.Debug("Fetched slots", logger.Fields{
		"count":       len(result.Slots),
		"total_count": result.TotalCount,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}

// decodeData applies the 2xx half of the response cascade to a /data body
func decodeData(body []byte) (*Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		// Valid JSON that is not an object (a bare array, a number) still carries no data field
		if json.Valid(body) {
			return &Result{Slots: []slot.Slot{}, TotalCount: -1}, nil
		}
		return nil, ErrInvalidResponse
	}

	result := &Result{Slots: []slot.Slot{}, TotalCount: -1}

	if raw, ok := payload["total_count"]; ok {
		var total int
		if err := json.Unmarshal(raw, &total); err == nil {
			result.TotalCount = total
		}
	}

	raw, ok := payload["data"]
	if !ok {
		return result, nil
	}

	slots, skipped, err := slot.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	result.Slots = slots
	result.Skipped = skipped
	return result, nil
}

// ClearData deletes every stored slot on the backend
func (c *Client) ClearData(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/clear_data")
	if err != nil {
		logger.IncrCounter("api.errors")
		return err
	}

	var payload struct {
		Message string `json:"message"`
	}
	// The acknowledgement text is informational only
	_ = json.Unmarshal(body, &payload)
	logger.Info("Backend data cleared", logger.Fields{
		"message": payload.Message,
	})
	return nil
}

// ScrapeStatus is the backend's view of the current scrape
type ScrapeStatus struct {
	Running         bool   `json:"running"`
	Progress        string `json:"progress"`
	Completed       bool   `json:"completed"`
	Error           string `json:"error,omitempty"`
	CurrentDate     string `json:"current_date"`
	TotalSlotsFound int    `json:"total_slots_found"`
	Website         string `json:"website"`
}

// Status fetches GET /status
func (c *Client) Status(ctx context.Context) (*ScrapeStatus, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/status")
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	var status ScrapeStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &status, nil
}

// do sends a request and returns the body of a 2xx response.
// Non-2xx responses become *StatusError; transport failures are wrapped.
func (c *Client) do(ctx context.Context, method, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := statusError(resp, body)
		logger.Warn("Backend returned an error", logger.Fields{
			"method": method,
			"url":    reqURL,
			"status": resp.StatusCode,
			"error":  se.Message,
		})
		return nil, se
	}

	return body, nil
}
