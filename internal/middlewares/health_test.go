package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuntimeHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	RuntimeHealthCheck("v1", func() bool { return true })(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"All OK","version":"v1","authenticated":true}`, rec.Body.String())
}
