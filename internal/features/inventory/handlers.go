// Package inventory — handlers.go обрабатывает HTTP-запросы /api/inventory.
package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/common"
)

// Handler обрабатывает запросы инвентаря.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик инвентаря.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type equipRequest struct {
	Equip *bool `json:"equip"`
}

// List — GET /api/inventory?type=&rarity=
func (h *Handler) List(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	listing, err := h.service.List(ctx.Request.Context(), userID, Filter{
		Type:   ItemType(ctx.Query("type")),
		Rarity: Rarity(ctx.Query("rarity")),
	})
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", listing)
}

// Equip — PATCH /api/inventory/:id/equip
// Тело {"equip": true|false}; без тела состояние переключается.
func (h *Handler) Equip(ctx *gin.Context) {
	itemID, ok := common.ParamID(ctx, "id")
	if !ok {
		common.Error(ctx, common.ErrItemNotFound)
		return
	}
	var req equipRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			common.Fail(ctx, http.StatusBadRequest, 40001, "некорректное тело запроса")
			return
		}
	}
	userID, _ := common.CurrentUserID(ctx)
	item, err := h.service.Equip(ctx.Request.Context(), userID, itemID, req.Equip)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	msg := "предмет снят"
	if item.IsEquipped {
		msg = "предмет надет"
	}
	common.Success(ctx, msg, item)
}

// Equipped — GET /api/inventory/equipped
func (h *Handler) Equipped(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	eq, err := h.service.Equipped(ctx.Request.Context(), userID)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", eq)
}
