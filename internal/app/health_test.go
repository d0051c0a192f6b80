package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, h *HealthChecker) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", h.Handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthChecker(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })

	t.Run("pass", func(t *testing.T) {
		code, body := serveHealth(t, &HealthChecker{deps: map[string]pinger{"postgres": ok, "redis": ok}})
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "pass", body["status"])
	})

	t.Run("reports failing dependency", func(t *testing.T) {
		down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

		code, body := serveHealth(t, &HealthChecker{deps: map[string]pinger{"postgres": ok, "redis": down}})
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "fail", body["status"])
		assert.Equal(t, map[string]any{"redis": "connection refused"}, body["checks"])
	})
}
