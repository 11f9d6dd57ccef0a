package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/metrics"
	"serotonyl.ru/habit-casino/internal/server/middleware"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func testRouter(p Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Tokens:  auth.NewTokenManager("access", "refresh", time.Minute, time.Hour),
		Metrics: metrics.New(),
		Health:  p,
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(testRouter(pinger{}), "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = get(testRouter(pinger{err: errors.New("down")}), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := testRouter(nil)
	for _, path := range []string{
		"/api/habits",
		"/api/habits/stats",
		"/api/habits/1/history",
		"/api/inventory",
		"/api/inventory/equipped",
		"/api/leaderboard",
		"/api/leaderboard/stats",
		"/api/users/profile",
		"/api/auth/me",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/habits/1/complete", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRouteAndMetrics(t *testing.T) {
	r := testRouter(nil)

	rec := get(r, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":40400`)

	rec = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "habit_casino_http_request_duration_seconds")
}
