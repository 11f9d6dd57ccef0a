// Package users — handlers.go обрабатывает HTTP-запросы /api/auth и /api/users.
package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/common"
)

// Handler обрабатывает запросы аккаунтов.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register — POST /api/auth/register
func (h *Handler) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, http.StatusBadRequest, 40001, "укажите username, email и password")
		return
	}
	session, err := h.service.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Created(ctx, "пользователь зарегистрирован", session)
}

// Login — POST /api/auth/login
func (h *Handler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, http.StatusBadRequest, 40001, "укажите email и password")
		return
	}
	session, err := h.service.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "вход выполнен", session)
}

// Refresh — POST /api/auth/refresh
func (h *Handler) Refresh(ctx *gin.Context) {
	var req refreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, http.StatusUnauthorized, 40102, "требуется refresh-токен")
		return
	}
	pair, err := h.service.Refresh(ctx.Request.Context(), req.RefreshToken)
	if errors.Is(err, common.ErrInvalidRefreshToken) {
		common.Respond(ctx, http.StatusForbidden, 40301, err.Error(), gin.H{"should_logout": true})
		return
	}
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "токены обновлены", pair)
}

// Logout — POST /api/auth/logout
func (h *Handler) Logout(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	if err := h.service.Logout(ctx.Request.Context(), userID); err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "выход выполнен", nil)
}

// Me — GET /api/auth/me и GET /api/users/profile
func (h *Handler) Me(ctx *gin.Context) {
	userID, _ := common.CurrentUserID(ctx)
	u, err := h.service.Profile(ctx.Request.Context(), userID)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "ok", u)
}

// UpdateProfile — PATCH /api/users/profile
func (h *Handler) UpdateProfile(ctx *gin.Context) {
	var upd ProfileUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		common.Fail(ctx, http.StatusBadRequest, 40001, "некорректное тело запроса")
		return
	}
	userID, _ := common.CurrentUserID(ctx)
	u, err := h.service.UpdateProfile(ctx.Request.Context(), userID, upd)
	if err != nil {
		common.Error(ctx, err)
		return
	}
	common.Success(ctx, "профиль обновлён", u)
}
