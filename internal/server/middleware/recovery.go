package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
)

// Recovery перехватывает панику в обработчике и отвечает 500.
func Recovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"component":  "panic_recovery",
					"panic":      fmt.Sprintf("%v", r),
					"path":       ctx.Request.URL.Path,
					"request_id": ctx.GetString(common.RequestIDKey),
					"stack":      string(debug.Stack()),
				}).Error("ПАНИКА в обработчике — восстановлено")

				common.Fail(ctx, http.StatusInternalServerError, 50000, "внутренняя ошибка сервера")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
