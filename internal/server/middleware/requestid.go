// Package middleware содержит промежуточные обработчики HTTP: request id,
// журнал запросов, восстановление после паники, rate-limiting и JWT-авторизацию.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"serotonyl.ru/habit-casino/internal/common"
)

// RequestIDHeader — заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// RequestID берёт id из заголовка клиента или выдаёт новый UUID.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Set(common.RequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}
