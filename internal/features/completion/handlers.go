// Package completion — handlers.go обрабатывает POST /api/habits/:id/complete.
package completion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/common"
)

// Handler обрабатывает выполнение привычек.
type Handler struct {
	orchestrator *Orchestrator
}

// NewHandler создаёт обработчик.
func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Complete — POST /api/habits/:id/complete
func (h *Handler) Complete(ctx *gin.Context) {
	habitID, ok := common.ParamID(ctx, "id")
	if !ok {
		common.Error(ctx, common.ErrHabitNotFound)
		return
	}
	userID, _ := common.CurrentUserID(ctx)

	res, err := h.orchestrator.Complete(ctx.Request.Context(), userID, habitID)
	if errors.Is(err, common.ErrAlreadyCompleted) {
		common.Respond(ctx, http.StatusBadRequest, 40010, err.Error(), gin.H{"already_completed": true})
		return
	}
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "привычка выполнена! 🎉", res)
}
