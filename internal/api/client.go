package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id the backend echoes and logs.
const RequestIDHeader = "X-Request-ID"

// Client wraps HTTP calls to the notes backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := NewClient(c.baseURL, timeout)
	clone.logger = c.logger
	return clone
}

// WithLogger makes the client log each round trip at debug level.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// do executes an HTTP request and returns the raw response body.
// The status is zero only when no response was received.
func (c *Client) do(method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if msg, ok := extractAPIErrorBody(respBody); ok {
			return respBody, resp.StatusCode, fmt.Errorf("%s", msg)
		}
		return respBody, resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, resp.StatusCode, nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// get performs a GET request.
func (c *Client) get(path string) ([]byte, error) {
	body, _, err := c.do(http.MethodGet, path, nil)
	return body, err
}

// post performs a POST request.
func (c *Client) post(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPost, path, body)
	return b, err
}

// decode unmarshals a plain JSON response body.
func decode[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["status"]); ok && msg != "ok" {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatAPIError(code, message)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
