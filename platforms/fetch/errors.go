package fetch

import "fmt"

// AuthError means the upstream rejected our credentials with a 401. It is
// never retried: the credentials are fixed per call, so a retry cannot help.
type AuthError struct {
	URL string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected by %s", e.URL)
}

// NotFoundError means the requested entity does not exist upstream.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// RateLimitError means the upstream throttled us past the retry budget.
// Callers may retry the whole operation later.
type RateLimitError struct {
	URL      string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by %s after %d attempts", e.URL, e.Attempts)
}

// ConnectionError covers transport failures, timeouts and 5xx responses that
// survived the retry budget.
type ConnectionError struct {
	URL    string
	Status int
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error connecting to %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unexpected status code %d from %s", e.Status, e.URL)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MalformedError means a 200 response carried an empty body, invalid JSON, or
// JSON of a different shape than expected. Upstream fantasy APIs are known to
// occasionally return surprise payloads; this is treated as a connection-class
// failure rather than a data bug.
type MalformedError struct {
	URL string
	Err error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("malformed response from %s", e.URL)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
