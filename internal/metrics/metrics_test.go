package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCompletionAndRewardCounters(t *testing.T) {
	m := New()
	m.CompletionOutcome("success")
	m.CompletionOutcome("success")
	m.CompletionOutcome("rejected")
	m.RewardGranted("xp", "")
	m.RewardGranted("loot", "epic")

	out := scrape(t, m)
	assert.Contains(t, out, `habit_casino_habits_completions_total{outcome="success"} 2`)
	assert.Contains(t, out, `habit_casino_habits_completions_total{outcome="rejected"} 1`)
	assert.Contains(t, out, `habit_casino_rewards_granted_total{kind="xp"} 1`)
	assert.Contains(t, out, `habit_casino_rewards_granted_total{kind="loot"} 1`)
	assert.Contains(t, out, `habit_casino_rewards_loot_total{rarity="epic"} 1`)
	assert.NotContains(t, out, `rarity=""`)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/habits/:id/history", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/habits/17/history", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	out := scrape(t, m)
	assert.Contains(t, out, `route="/api/habits/:id/history"`)
	assert.Contains(t, out, `status="204"`)
	assert.NotContains(t, out, "/api/habits/17/history")
}
