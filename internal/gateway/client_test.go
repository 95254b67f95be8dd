package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient() *client {
	return &client{Tokens: staticToken("session-token")}
}

type testCase[T any] struct {
	name    string
	client  *client
	want    T
	handler func(w http.ResponseWriter, r *http.Request)
	err     error
}

func getTestCases[T any](t *testing.T, mockRes T, expectedInputURL string, apiName string) []testCase[T] {
	var zero T
	return []testCase[T]{
		{
			name:   "200-success",
			client: newTestClient(),
			want:   mockRes,
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, expectedInputURL, r.RequestURI)
				require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
				_, err := io.ReadAll(r.Body)
				require.NoError(t, err)

				c, err := json.Marshal(mockRes)
				require.NoError(t, err)

				_, err = w.Write(c)
				require.NoError(t, err)
			},
		},
		{
			name:   "Error-ReadingRespData",
			client: newTestClient(),
			want:   zero,
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, expectedInputURL, r.RequestURI)
				c, err := json.Marshal("™™¡¡¡¡ß")
				require.NoError(t, err)

				_, err = w.Write(c)
				require.NoError(t, err)
			},
			err: fmt.Errorf("there was an error un marshalling the %s resp. cause: json: cannot unmarshal string into Go value", apiName),
		},
		{
			name:   "401-Unauthorized",
			client: newTestClient(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			err: fmt.Errorf("failed to call %s with cause 401 unauthorized", apiName),
		},
		{
			name:   "403-Forbidden",
			client: newTestClient(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			err: fmt.Errorf("failed to call %s with cause 403 unauthorized", apiName),
		},
		{
			name:   "404-NotFound",
			client: newTestClient(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			err: fmt.Errorf("failed to call %s with cause 404 not found", apiName),
		},
		{
			name:   "503-Unavailable",
			client: newTestClient(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			err: fmt.Errorf("failed to call %s with cause 503 non retryable", apiName),
		},
		{
			name:   "429-RateLimit",
			client: newTestClient(),
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			err: fmt.Errorf("failed to call %s with cause 429 rate limit exceeded", apiName),
		},
	}
}

func serve[T any](t *testing.T, tt testCase[T]) {
	s := httptest.NewServer(http.HandlerFunc(tt.handler))
	t.Cleanup(s.Close)
	tt.client.Client = s.Client()
	tt.client.EmployeeURL = s.URL
	tt.client.LeaveURL = s.URL
}

func TestNetworkErrorClassification(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &NetworkError{Op: "GetEmployee", StatusCode: http.StatusNotFound})
	require.True(t, IsNetworkError(err))
	require.True(t, IsNotFound(err))

	err = &NetworkError{Op: "ListEmployees", Err: errors.New("connection refused")}
	require.True(t, IsNetworkError(err))
	require.False(t, IsNotFound(err))
	require.EqualError(t, err, "failed to call ListEmployees: connection refused")

	require.False(t, IsNetworkError(errors.New("plain")))
}

func TestUnreachableBackend(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(s.URL, s.URL, s.Client(), nil)
	s.Close()

	_, err := c.ListEmployees(context.Background())
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
}
