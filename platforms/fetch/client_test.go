package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func newTestClient() *Client {
	c := New()
	c.backoff = time.Millisecond
	return c
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"value": 7}`))
	}))
	defer server.Close()

	var out struct {
		Value int `json:"value"`
	}
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if out.Value != 7 {
		t.Errorf("expected decoded value 7, got %d", out.Value)
	}
	if requests != 3 {
		t.Errorf("expected 3 requests, got %d", requests)
	}
}

func TestGetJSONServerErrorsExhaustBudget(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
	if connErr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502 on error, got %d", connErr.Status)
	}
	if requests != maxAttempts {
		t.Errorf("expected %d requests, got %d", maxAttempts, requests)
	}
}

func TestGetJSONDoesNotRetryUnauthorized(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if requests != 1 {
		t.Errorf("expected a single request for a 401, got %d", requests)
	}
}

func TestGetJSONNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestGetJSONRateLimitExhaustsBudget(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}
	if rlErr.Attempts != maxAttempts {
		t.Errorf("expected %d attempts recorded, got %d", maxAttempts, rlErr.Attempts)
	}
	if requests != maxAttempts {
		t.Errorf("expected %d requests, got %d", maxAttempts, requests)
	}
}

func TestGetJSONMalformedBodies(t *testing.T) {
	tests := map[string]struct {
		body string
	}{
		"empty body":            {body: ""},
		"invalid json":          {body: "<html>maintenance</html>"},
		"array where an object": {body: `[1, 2, 3]`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			var out struct{}
			err := newTestClient().GetJSON(context.Background(), server.URL, nil, nil, &out)
			var malErr *MalformedError
			if !errors.As(err, &malErr) {
				t.Fatalf("expected *MalformedError, got %v", err)
			}
		})
	}
}

func TestGetJSONSendsParamsAndCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("view"); got != "mTeam" {
			t.Errorf("expected view=mTeam query parameter, got %q", got)
		}
		cookie, err := r.Cookie("espn_s2")
		if err != nil || cookie.Value != "secret" {
			t.Errorf("expected espn_s2 cookie to be forwarded, got %v", cookie)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	params := url.Values{"view": []string{"mTeam"}}
	cookies := []*http.Cookie{{Name: "espn_s2", Value: "secret"}}
	var out struct{}
	if err := newTestClient().GetJSON(context.Background(), server.URL, params, cookies, &out); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestGetJSONContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New()
	c.backoff = time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	var out map[string]any
	err := c.GetJSON(ctx, server.URL, nil, nil, &out)
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected error to wrap context.Canceled, got %v", err)
	}
}
