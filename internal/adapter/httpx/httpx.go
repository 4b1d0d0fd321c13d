// Package httpx holds the plumbing shared by outbound REST integrations.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 10 * time.Second

const defaultRetryAfter = 5 * time.Second

// RateLimitError signals the remote asked us to back off.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("%v: too many requests, retry after %s", e.Err, e.RetryAfter)
}

func (e RateLimitError) Unwrap() error {
	return e.Err
}

// NewClient returns an http.Client with DefaultTimeout.
func NewClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// ParseBaseURL requires an absolute base URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("url must be absolute: %q", raw)
	}
	return parsed, nil
}

// Endpoint joins elem onto base without mutating it.
func Endpoint(base *url.URL, elem ...string) string {
	endpoint := *base
	endpoint.Path = path.Join(append([]string{endpoint.Path}, elem...)...)
	return endpoint.String()
}

// NewJSONRequest encodes body as JSON. A nil body sends no payload.
func NewJSONRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// DecodeJSON reads the whole body into dst.
func DecodeJSON(resp *http.Response, dst any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ReadSnippet returns at most 512 bytes of the body for logging.
func ReadSnippet(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return string(body)
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func ParseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return defaultRetryAfter
}
