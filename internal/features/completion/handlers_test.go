package completion

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/features/habits"
)

func completeRouter(o *Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/habits/:id/complete", func(ctx *gin.Context) {
		ctx.Set(common.UserIDKey, int64(1))
		ctx.Next()
	}, NewHandler(o).Complete)
	return r
}

func post(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestCompleteHandlerStatuses(t *testing.T) {
	db := newMemDB()
	seed(db, habits.Habit{ID: 10, Name: "Read"})
	o := newOrchestrator(db, &scripted{floats: []float64{0.5}, ints: []int{0}}, day(10, 9))
	r := completeRouter(o)

	rec := post(r, "/api/habits/10/complete")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"streak":1`)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = post(r, "/api/habits/10/complete")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"already_completed":true`)

	assert.Equal(t, http.StatusNotFound, post(r, "/api/habits/99/complete").Code)
	assert.Equal(t, http.StatusNotFound, post(r, "/api/habits/abc/complete").Code)
}
