package customhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestBuildAttachesRequestID(t *testing.T) {
	var got string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer s.Close()

	cmd := New(WithHTTPClient(s.Client())).Build()
	req, err := http.NewRequest(http.MethodGet, s.URL, nil)
	require.NoError(t, err)

	resp, err := cmd.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = uuid.Parse(got)
	require.NoError(t, err)
}

func TestBuildKeepsCallerRequestID(t *testing.T) {
	var got string
	cmd := New(WithHTTPClient(httpCommandFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get(RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}))).Build()

	req, err := http.NewRequest(http.MethodGet, "http://backend.local/employees", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")

	_, err = cmd.Do(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", got)
}

func TestRateLimitHonoursContext(t *testing.T) {
	calls := 0
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	cmd := New(
		WithHTTPClient(httpCommandFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		})),
		WithRateLimit(limiter),
	).Build()

	req, err := http.NewRequest(http.MethodGet, "http://backend.local/employees", nil)
	require.NoError(t, err)
	_, err = cmd.Do(req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, "http://backend.local/employees", nil)
	require.NoError(t, err)
	_, err = cmd.Do(req)
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
