package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse — единый формат ответа API.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond пишет JSON-ответ с заданным статусом.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success отдаёт стандартный успешный ответ.
func Success(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusOK, 0, message, data)
}

// Created отдаёт 201 с созданной сущностью.
func Created(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusCreated, 0, message, data)
}

// Fail отдаёт ответ-ошибку.
func Fail(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Error переводит доменную ошибку в HTTP-статус и код ответа.
// Неизвестные ошибки не раскрываются клиенту.
func Error(ctx *gin.Context, err error) {
	status, code := Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "внутренняя ошибка сервера"
	}
	Fail(ctx, status, code, message)
}

// Classify возвращает HTTP-статус и прикладной код для ошибки.
func Classify(err error) (int, int) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, 40401
	case errors.Is(err, ErrHabitNotFound):
		return http.StatusNotFound, 40402
	case errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound, 40403
	case errors.Is(err, ErrAlreadyCompleted):
		return http.StatusBadRequest, 40010
	case errors.Is(err, ErrHabitNameRequired), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, 40001
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest, 40002
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, 40003
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, 40101
	case errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusForbidden, 40301
	default:
		return http.StatusInternalServerError, 50000
	}
}
