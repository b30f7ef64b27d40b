package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("disk I/O error") }

func serveHealth(t *testing.T, db Pinger) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", NewHealthController(db, "1.0.0").Status)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	return w, decode[HealthResponse](t, w)
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when catalog is reachable", func(t *testing.T) {
		s := newTestServer(t, nil)

		w := s.do(t, "GET", "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "ok", response.Checks["catalog"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		w, response := serveHealth(t, failingPinger{})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["catalog"], "disk I/O error")
	})

	t.Run("reports missing catalog", func(t *testing.T) {
		w, response := serveHealth(t, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["catalog"])
	})
}
