package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
)

// AccessLog пишет одну запись на запрос.
// Записывает: метод, путь, статус, время обработки, request id, IP и пользователя.
func AccessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		fields := log.Fields{
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  ctx.ClientIP(),
			"request_id": ctx.GetString(common.RequestIDKey),
		}
		if userID, ok := common.CurrentUserID(ctx); ok {
			fields["user_id"] = userID
		}

		entry := log.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("HTTP-запрос")
		case status >= 400:
			entry.Warn("HTTP-запрос")
		default:
			entry.Debug("HTTP-запрос")
		}
	}
}
