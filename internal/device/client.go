package device

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// onBody is the response body a device reports when it is switched on.
const onBody = "ON"

// Client talks directly to the microcontroller over HTTP GET. Every call is a
// single attempt; retries are left to the user re-triggering the action.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// State reads the current on/off state of a device via GET /{device}/estado.
func (c *Client) State(ctx context.Context, device string) (bool, error) {
	body, err := c.get(ctx, "/"+device+"/estado")
	if err != nil {
		return false, err
	}
	return isOn(body), nil
}

// Toggle flips a device via GET /{device}/toggle. The device itself inverts
// its state and reports the new one in the response body.
func (c *Client) Toggle(ctx context.Context, device string) (bool, error) {
	body, err := c.get(ctx, "/"+device+"/toggle")
	if err != nil {
		return false, err
	}
	return isOn(body), nil
}

// Probe checks connectivity via GET /estado, expecting HTTP 200.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.get(ctx, "/estado")
	return err
}

func (c *Client) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("device request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading device response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("device returned status %d for %s", resp.StatusCode, path)
	}
	return string(body), nil
}

func isOn(body string) bool {
	return strings.TrimSpace(body) == onBody
}
