package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

func get(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestGetJSONDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient("test", srv.Client(), fastBackoff)
	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, c.GetJSON(context.Background(), get(srv.URL), &out))
	require.Equal(t, "ok", out.Status)
}

func TestDoRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("retry", srv.Client(), fastBackoff)
	resp, err := c.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, int32(3), calls.Load())
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("auth", srv.Client(), fastBackoff)
	_, err := c.Do(context.Background(), get(srv.URL))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnexpectedStatus))
	require.Equal(t, int32(1), calls.Load())
}

func TestDoRateLimitedAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("limited", srv.Client(), fastBackoff)
	_, err := c.Do(context.Background(), get(srv.URL))
	require.True(t, errors.Is(err, ErrRateLimited))
}

func TestDoHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient("slow", srv.Client(), BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond})
	_, err := c.Do(ctx, get(srv.URL))
	require.Error(t, err)
}

func TestDoWithoutHTTPClient(t *testing.T) {
	c := NewClient("nil", nil, fastBackoff)
	_, err := c.Do(context.Background(), get("http://example.invalid"))
	require.ErrorIs(t, err, ErrNoHTTPClient)
}
