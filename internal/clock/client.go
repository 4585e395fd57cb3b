// Package clock talks to the DoubleClock's settings endpoint.
package clock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

const settingsPath = "/settings"

// maxBodyBytes caps how much of a device response is read.
const maxBodyBytes = 1 << 20

// Device is the subset of the clock API used by the HTTP layer.
type Device interface {
	Settings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) (json.RawMessage, error)
}

// StatusError is returned when the clock answers with a non-2xx status.
type StatusError struct {
	Method string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clock %s %s: status %d: %s", e.Method, settingsPath, e.Code, e.Body)
}

// Client is an HTTP client for a single clock.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Device = (*Client)(nil)

// NewClient returns a client for the clock at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Settings fetches the current alarm definitions.
func (c *Client) Settings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings

	body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal(body, &settings); err != nil {
		return settings, fmt.Errorf("decode clock settings: %w", err)
	}
	return settings, nil
}

// SaveSettings posts settings to the clock and returns its JSON acknowledgement.
func (c *Client) SaveSettings(ctx context.Context, settings model.Settings) (json.RawMessage, error) {
	if settings.Alarms == nil {
		settings.Alarms = []model.Alarm{}
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode clock settings: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, payload)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode clock acknowledgement: invalid JSON %q", truncate(body))
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, method string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+settingsPath, reader)
	if err != nil {
		return nil, fmt.Errorf("build clock request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clock %s %s: %w", method, settingsPath, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read clock response: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("clock request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Code: resp.StatusCode, Body: truncate(body)}
	}
	return body, nil
}

func truncate(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
