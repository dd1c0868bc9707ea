package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/testutil"
)

func loggingRouter(log *testutil.MockLogger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogging(log, DefaultLoggingConfig()), Recovery(log))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/api/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestLogging_Levels(t *testing.T) {
	log := testutil.NewMockLogger()
	r := loggingRouter(log)

	serve(r, "/api/products", nil)
	serve(r, "/api/missing", nil)

	assert.True(t, log.HasMessage("info", "HTTP request completed"))
	assert.True(t, log.HasMessage("warn", "HTTP request completed with client error"))
}

func TestRequestLogging_SkipsHealth(t *testing.T) {
	log := testutil.NewMockLogger()
	serve(loggingRouter(log), "/healthz", nil)
	assert.Empty(t, log.GetMessages())
}

func TestRecovery(t *testing.T) {
	log := testutil.NewMockLogger()
	w := serve(loggingRouter(log), "/api/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, log.HasMessage("error", "panic serving request"))
	assert.True(t, log.HasMessage("error", "HTTP request completed with server error"))
}

func TestRequestID(t *testing.T) {
	r := loggingRouter(testutil.NewMockLogger())

	w := serve(r, "/api/products", map[string]string{RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = serve(r, "/api/products", nil)
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
