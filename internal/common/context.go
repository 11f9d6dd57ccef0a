package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Ключи gin-контекста, которые заполняют middleware.
const (
	UserIDKey    = "user_id"
	RequestIDKey = "request_id"
)

// CurrentUserID возвращает ID пользователя, проставленный JWT-middleware.
func CurrentUserID(ctx *gin.Context) (int64, bool) {
	v, ok := ctx.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// ParamID читает положительный числовой параметр пути (например, :id).
func ParamID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryInt читает целый query-параметр, def — если не задан или некорректен.
func QueryInt(ctx *gin.Context, name string, def int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
