package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prophezeiung/internal/database"
	"prophezeiung/internal/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealthChecker struct {
	health map[string]interface{}
}

func (s *stubHealthChecker) HealthCheck(ctx context.Context) map[string]interface{} {
	return s.health
}

func newTestResponseBuilder() *response.Builder {
	return response.NewBuilder(&response.Config{APIVersion: "v1"}, nil)
}

func TestHealthHandlerReportsOKWhenHealthy(t *testing.T) {
	checker := &stubHealthChecker{health: map[string]interface{}{
		"status":    database.StatusHealthy,
		"event_bus": map[string]interface{}{"healthy": true},
		"cache":     map[string]interface{}{"healthy": true},
	}}
	handler := healthHandler(checker, newTestResponseBuilder())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, database.StatusHealthy, body.Data["status"])
}

func TestHealthHandlerReportsUnavailableWhenUnhealthy(t *testing.T) {
	checker := &stubHealthChecker{health: map[string]interface{}{
		"status": database.StatusUnhealthy,
		"cache":  map[string]interface{}{"healthy": false, "error": "connection refused"},
	}}
	handler := healthHandler(checker, newTestResponseBuilder())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealthHandlerTreatsMissingStatusAsUnhealthy(t *testing.T) {
	checker := &stubHealthChecker{health: map[string]interface{}{}}
	handler := healthHandler(checker, newTestResponseBuilder())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
