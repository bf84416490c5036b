package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Poster delivers a message to a chat backend.
type Poster interface {
	Post(ctx context.Context, msg *Message) error
}

// Client posts messages to a Rocket.Chat incoming webhook.
type Client struct {
	URL    *url.URL     // incoming webhook URL, token included
	Client *http.Client // Underlying HTTP client
}

// NewClient returns a client for the given incoming webhook URL.
func NewClient(rawURL string, timeout time.Duration, skipTLSVerify bool) (*Client, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("missing webhook URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid webhook URL: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		URL:    u,
		Client: newHTTPClient(timeout, skipTLSVerify),
	}, nil
}

// Post sends one message. There is no retry; the caller decides what to do on failure.
func (c *Client) Post(ctx context.Context, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL.String(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
