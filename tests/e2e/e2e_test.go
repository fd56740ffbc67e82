//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_LiveEndpoint verifies the liveness probe returns 200 OK.
func TestE2E_LiveEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.restRequest(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", objBody(t, raw)["status"])
}

// TestE2E_ReadyEndpoint verifies the readiness probe returns 200 OK when
// the database is reachable.
func TestE2E_ReadyEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.restRequest(t, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", objBody(t, raw)["status"])
}

// TestE2E_HealthEndpoint verifies /health returns 200 with version and
// database component status.
func TestE2E_HealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.restRequest(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)

	body := objBody(t, raw)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])

	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "expected components object")

	db, ok := components["database"].(map[string]any)
	require.True(t, ok, "expected database component")
	assert.Equal(t, "ok", db["status"])
}

// TestE2E_RequestID_InResponse verifies that every response from the
// middleware stack includes an X-Request-Id header.
func TestE2E_RequestID_InResponse(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client.Get(ts.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	requestID := resp.Header.Get("X-Request-Id")
	require.NotEmpty(t, requestID, "response should include X-Request-Id header")

	_, err = uuid.Parse(requestID)
	assert.NoError(t, err, "X-Request-Id should be a valid UUID")
}

// TestE2E_CORS_Preflight verifies that an OPTIONS preflight request
// returns the appropriate Access-Control-Allow-* headers.
func TestE2E_CORS_Preflight(t *testing.T) {
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/queue", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Authorization,Content-Type")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Headers"))
}

// TestE2E_Unauthorized verifies that protected endpoints reject anonymous
// requests with 401.
func TestE2E_Unauthorized(t *testing.T) {
	ts := setupTestServer(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/queue"},
		{http.MethodGet, "/api/items"},
		{http.MethodGet, "/api/gamification"},
		{http.MethodGet, "/api/settings"},
		{http.MethodGet, "/api/recommendations?language=ja"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			status, _ := ts.restRequest(t, ep.method, ep.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

// TestE2E_InvalidToken verifies that a garbage bearer token yields 401
// before reaching any handler.
func TestE2E_InvalidToken(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.restRequest(t, http.MethodGet, "/api/queue", nil, "not-a-valid-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}
