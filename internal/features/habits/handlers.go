// Package habits — handlers.go обрабатывает HTTP-запросы /api/habits.
package habits

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/common"
)

// Handler обрабатывает запросы привычек.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик привычек.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// List — GET /api/habits
func (h *Handler) List(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	list, err := h.service.List(ctx.Request.Context(), userID)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", list)
}

// Create — POST /api/habits
func (h *Handler) Create(ctx *gin.Context) {
	var req createRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, http.StatusBadRequest, 40001, "некорректное тело запроса")
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	habit, err := h.service.Create(ctx.Request.Context(), userID, req.Name, req.Icon, req.Description)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Created(ctx, "привычка создана", habit)
}

// Update — PATCH /api/habits/:id
func (h *Handler) Update(ctx *gin.Context) {
	habitID, ok := common.ParamID(ctx, "id")
	if !ok {
		common.Error(ctx, common.ErrHabitNotFound)
		return
	}
	var upd HabitUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		common.Fail(ctx, http.StatusBadRequest, 40001, "некорректное тело запроса")
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	habit, err := h.service.Update(ctx.Request.Context(), userID, habitID, upd)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "привычка обновлена", habit)
}

// Delete — DELETE /api/habits/:id
func (h *Handler) Delete(ctx *gin.Context) {
	habitID, ok := common.ParamID(ctx, "id")
	if !ok {
		common.Error(ctx, common.ErrHabitNotFound)
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	if err := h.service.Delete(ctx.Request.Context(), userID, habitID); err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "привычка удалена", nil)
}

// History — GET /api/habits/:id/history?page=&limit=
func (h *Handler) History(ctx *gin.Context) {
	habitID, ok := common.ParamID(ctx, "id")
	if !ok {
		common.Error(ctx, common.ErrHabitNotFound)
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	page, err := h.service.History(ctx.Request.Context(), userID, habitID,
		common.QueryInt(ctx, "page", 1), common.QueryInt(ctx, "limit", DefaultHistoryLimit))
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", page)
}

// Stats — GET /api/habits/stats
func (h *Handler) Stats(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	stats, err := h.service.Stats(ctx.Request.Context(), userID)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", stats)
}
