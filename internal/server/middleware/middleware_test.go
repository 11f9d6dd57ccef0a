package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(common.RequestIDKey))
	})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = do(r, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryReturns500(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog(), Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":50000`)
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2) // burst 1
	defer rl.Close()

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Close()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	rec := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":42901`)
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	r := gin.New()
	r.Use(Auth(tokens))
	r.GET("/me", func(ctx *gin.Context) {
		id, ok := common.CurrentUserID(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	pair, err := tokens.Issue(7)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = do(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}
