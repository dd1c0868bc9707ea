package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func healthRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := httptest.NewRecorder()
	healthRouter(NewHealthHandler("2.0.0", nil)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "2.0.0", resp.Version)
}

func TestHealthHandler_ReadinessAllHealthy(t *testing.T) {
	h := NewHealthHandler("2.0.0", nil,
		CheckFunc{Component: "postgres", Fn: func(context.Context) error { return nil }},
		CheckFunc{Component: "redis", Fn: func(context.Context) error { return nil }},
	)
	w := httptest.NewRecorder()
	healthRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Len(t, resp.Components, 2)
}

func TestHealthHandler_ReadinessDegraded(t *testing.T) {
	h := NewHealthHandler("2.0.0", nil,
		CheckFunc{Component: "postgres", Fn: func(context.Context) error { return nil }},
		CheckFunc{Component: "minio", Fn: func(context.Context) error { return fmt.Errorf("bucket missing") }},
	)
	w := httptest.NewRecorder()
	healthRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "bucket missing", resp.Components["minio"].Error)
	assert.Equal(t, "healthy", resp.Components["postgres"].Status)
}

func TestHealthHandler_ReadinessWithoutCheckers(t *testing.T) {
	w := httptest.NewRecorder()
	healthRouter(NewHealthHandler("2.0.0", nil)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
