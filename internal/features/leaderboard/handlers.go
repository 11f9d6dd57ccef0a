// Package leaderboard — handlers.go обрабатывает HTTP-запросы /api/leaderboard.
package leaderboard

import (
	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/common"
)

// Handler обрабатывает запросы рейтинга.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик рейтинга.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Board — GET /api/leaderboard?timeframe=all-time|weekly&limit=10
func (h *Handler) Board(ctx *gin.Context) {
	tf, err := ParseTimeframe(ctx.Query("timeframe"))
	if err != nil {
		common.Error(ctx, err)
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	board, err := h.service.Board(ctx.Request.Context(), userID, tf, common.QueryInt(ctx, "limit", DefaultLimit))
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", board)
}

// Stats — GET /api/leaderboard/stats
func (h *Handler) Stats(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	stats, err := h.service.Stats(ctx.Request.Context(), userID)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", stats)
}
