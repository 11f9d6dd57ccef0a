package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/common"
)

// Auth пропускает только запросы с валидным access-токеном в заголовке
// Authorization: Bearer <token> и кладёт ID пользователя в контекст.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			common.Fail(ctx, http.StatusUnauthorized, 40101, "требуется авторизация")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			common.Fail(ctx, http.StatusUnauthorized, 40102, "некорректный заголовок Authorization")
			ctx.Abort()
			return
		}

		claims, err := tokens.ParseAccess(strings.TrimSpace(parts[1]))
		if err != nil {
			common.Fail(ctx, http.StatusUnauthorized, 40103, "недействительный токен")
			ctx.Abort()
			return
		}

		ctx.Set(common.UserIDKey, claims.UserID)
		ctx.Next()
	}
}
