// Package fetch provides the HTTP client used for version manifests
// and library artifacts. Timeout and retry budget are explicit
// configuration threaded into the constructor; there is no
// package-level client state.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config controls network behavior for one client.
type Config struct {
	// Timeout bounds each individual request attempt.
	Timeout time.Duration

	// MaxRetries is the fixed retry budget per operation. Exhausting
	// it fails the operation with the terminal cause.
	MaxRetries uint64

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns the production defaults: 30s per attempt,
// three retries.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		UserAgent:  "dream-launcher",
	}
}

// Client is a retrying HTTP fetcher.
type Client struct {
	http *http.Client
	cfg  Config
}

// NewClient builds a client from explicit configuration.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Get fetches a URL and returns the response body. Server errors and
// transport failures are retried up to the configured budget; client
// errors (4xx) are terminal immediately.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.cfg.UserAgent != "" {
			req.Header.Set("User-Agent", c.cfg.UserAgent)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body, err = io.ReadAll(resp.Body)
			return err
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("GET %s: status %d", url, resp.StatusCode))
		default:
			return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		}
	}

	if err := backoff.Retry(op, c.backoff(ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// GetJSON fetches a URL and unmarshals the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Download fetches a URL to a file, creating parent directories as
// needed. The file is written via a temporary name and renamed so a
// failed download never leaves a truncated artifact behind.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", dest, err)
	}

	tmp := dest + ".part"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("finalize %s: %w", dest, err)
	}
	return nil
}

func (c *Client) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(b, c.cfg.MaxRetries), ctx)
}
