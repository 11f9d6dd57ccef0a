// Package server собирает HTTP API: маршруты, middleware и http.Server
// с graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/features/completion"
	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/inventory"
	"serotonyl.ru/habit-casino/internal/features/leaderboard"
	"serotonyl.ru/habit-casino/internal/features/users"
	"serotonyl.ru/habit-casino/internal/metrics"
	"serotonyl.ru/habit-casino/internal/server/middleware"
)

// Pinger проверяет доступность зависимостей (БД) для /api/health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps — всё, что нужно роутеру.
type Deps struct {
	Tokens      *auth.TokenManager
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics
	Health      Pinger

	Users       *users.Handler
	Habits      *habits.Handler
	Completion  *completion.Handler
	Inventory   *inventory.Handler
	Leaderboard *leaderboard.Handler
}

// NewRouter регистрирует все маршруты /api.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.NoRoute(func(ctx *gin.Context) {
		common.Fail(ctx, http.StatusNotFound, 40400, "маршрут не найден")
	})

	api := r.Group("/api")
	api.GET("/health", health(d.Health))

	authGroup := api.Group("/auth")
	{
		public := authGroup.Group("")
		if d.RateLimiter != nil {
			public.Use(d.RateLimiter.Middleware())
		}
		public.POST("/register", d.Users.Register)
		public.POST("/login", d.Users.Login)
		public.POST("/refresh", d.Users.Refresh)

		private := authGroup.Group("", middleware.Auth(d.Tokens))
		private.POST("/logout", d.Users.Logout)
		private.GET("/me", d.Users.Me)
	}

	protected := api.Group("", middleware.Auth(d.Tokens))
	{
		h := protected.Group("/habits")
		h.GET("", d.Habits.List)
		h.POST("", d.Habits.Create)
		h.GET("/stats", d.Habits.Stats)
		h.PATCH("/:id", d.Habits.Update)
		h.DELETE("/:id", d.Habits.Delete)
		h.POST("/:id/complete", d.Completion.Complete)
		h.GET("/:id/history", d.Habits.History)

		u := protected.Group("/users")
		u.GET("/profile", d.Users.Me)
		u.PATCH("/profile", d.Users.UpdateProfile)

		inv := protected.Group("/inventory")
		inv.GET("", d.Inventory.List)
		inv.GET("/equipped", d.Inventory.Equipped)
		inv.PATCH("/:id/equip", d.Inventory.Equip)

		lb := protected.Group("/leaderboard")
		lb.GET("", d.Leaderboard.Board)
		lb.GET("/stats", d.Leaderboard.Stats)
	}

	return r
}

func health(p Pinger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if p != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(pingCtx); err != nil {
				common.Respond(ctx, http.StatusServiceUnavailable, 50300, "база данных недоступна", gin.H{"status": "degraded"})
				return
			}
		}
		common.Success(ctx, "ok", gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}
