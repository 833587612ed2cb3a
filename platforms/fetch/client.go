// Package fetch is the shared HTTP core for the platform clients. It handles
// retries, backoff, rate-limit signals and payload-shape validation so the
// ESPN and Sleeper clients only deal with well-formed JSON.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxAttempts    = 3
	attemptTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; FantasyFootballAssistant/1.0)"
)

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	backoff    time.Duration // unit backoff between attempts
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: attemptTimeout,
		},
		backoff: time.Second,
	}
}

// NewWithLimit returns a client that paces its requests with a token bucket.
// Used for Sleeper, which asks clients to stay under 1000 requests a minute.
func NewWithLimit(limit rate.Limit, burst int) *Client {
	c := New()
	c.limiter = rate.NewLimiter(limit, burst)
	return c
}

// GetJSON fetches rawURL with the given query parameters and optional cookies
// and decodes the body into out. It retries transient failures up to three
// attempts and classifies terminal failures into the error types of this
// package. A 401 is returned immediately without retrying.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, cookies []*http.Cookie, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("error parsing url %s: %w", rawURL, err)
	}
	host := u.Host

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return &ConnectionError{URL: rawURL, Err: err}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("error creating http request: %w", err)
		}
		if len(params) > 0 {
			req.URL.RawQuery = params.Encode()
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		requestDuration.WithLabelValues(host).Observe(time.Since(start).Seconds())
		if err != nil {
			requestsTotal.WithLabelValues(host, "transport_error").Inc()
			lastErr = err
			if attempt == maxAttempts-1 {
				break
			}
			retriesTotal.WithLabelValues(host, "transport_error").Inc()
			if err := sleep(ctx, c.backoff); err != nil {
				return &ConnectionError{URL: rawURL, Err: err}
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err := decodeBody(resp, rawURL, out)
			if err != nil {
				requestsTotal.WithLabelValues(host, "malformed").Inc()
				return err
			}
			requestsTotal.WithLabelValues(host, "ok").Inc()
			return nil

		case resp.StatusCode == http.StatusUnauthorized:
			// Credentials are per-call; retrying with the same bad
			// credentials cannot succeed.
			drain(resp)
			requestsTotal.WithLabelValues(host, "auth").Inc()
			return &AuthError{URL: rawURL}

		case resp.StatusCode == http.StatusNotFound:
			drain(resp)
			requestsTotal.WithLabelValues(host, "not_found").Inc()
			return &NotFoundError{URL: rawURL}

		case resp.StatusCode == http.StatusTooManyRequests:
			drain(resp)
			if attempt == maxAttempts-1 {
				requestsTotal.WithLabelValues(host, "rate_limited").Inc()
				return &RateLimitError{URL: rawURL, Attempts: maxAttempts}
			}
			retriesTotal.WithLabelValues(host, "rate_limited").Inc()
			if err := sleep(ctx, time.Duration(1<<attempt)*c.backoff); err != nil {
				return &ConnectionError{URL: rawURL, Err: err}
			}
			continue

		case resp.StatusCode >= 500:
			drain(resp)
			lastErr = nil
			if attempt == maxAttempts-1 {
				requestsTotal.WithLabelValues(host, "server_error").Inc()
				return &ConnectionError{URL: rawURL, Status: resp.StatusCode}
			}
			retriesTotal.WithLabelValues(host, "server_error").Inc()
			if err := sleep(ctx, c.backoff); err != nil {
				return &ConnectionError{URL: rawURL, Err: err}
			}
			continue

		default:
			drain(resp)
			requestsTotal.WithLabelValues(host, "unexpected_status").Inc()
			return &ConnectionError{URL: rawURL, Status: resp.StatusCode}
		}
	}

	requestsTotal.WithLabelValues(host, "exhausted").Inc()
	return &ConnectionError{URL: rawURL, Err: lastErr}
}

func decodeBody(resp *http.Response, rawURL string, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{URL: rawURL, Err: err}
	}
	if len(body) == 0 {
		return &MalformedError{URL: rawURL, Err: fmt.Errorf("empty response body")}
	}

	// Unmarshal rejects shape mismatches (array where an object is
	// expected and vice versa) along with invalid JSON.
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedError{URL: rawURL, Err: err}
	}
	return nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
