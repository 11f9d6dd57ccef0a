// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, кэш, репозитории, сервисы, обработчики
// и собирает всё в HTTP-сервер и планировщик.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/cache"
	"serotonyl.ru/habit-casino/internal/config"
	"serotonyl.ru/habit-casino/internal/db/postgres"
	"serotonyl.ru/habit-casino/internal/features/completion"
	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/inventory"
	"serotonyl.ru/habit-casino/internal/features/leaderboard"
	"serotonyl.ru/habit-casino/internal/features/rewards"
	"serotonyl.ru/habit-casino/internal/features/streak"
	"serotonyl.ru/habit-casino/internal/features/users"
	"serotonyl.ru/habit-casino/internal/jobs"
	"serotonyl.ru/habit-casino/internal/metrics"
	"serotonyl.ru/habit-casino/internal/notify"
	"serotonyl.ru/habit-casino/internal/server"
	"serotonyl.ru/habit-casino/internal/server/middleware"
)

// App содержит все компоненты приложения.
type App struct {
	Server      *server.Server
	Scheduler   *jobs.Scheduler
	DB          *pgxpool.Pool
	Redis       *redis.Client // nil, если кэш выключен
	RateLimiter *middleware.RateLimiter
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool, migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Redis (необязательный) ===
	rdb := connectRedis(ctx, cfg)

	// === 3. Внешние сервисы ===
	notifier, err := notify.New(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		return nil, err
	}

	seed := cfg.RewardSeed
	if seed == 0 {
		if seed, err = rewards.NewSeed(); err != nil {
			pool.Close()
			return nil, err
		}
	}
	log.WithField("fixed_seed", cfg.RewardSeed != 0).Info("Генератор наград инициализирован")

	// === 4. Репозитории ===
	userRepo := users.NewRepository(pool)
	habitRepo := habits.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	leaderboardRepo := leaderboard.NewRepository(pool)

	// === 5. Сервисы ===
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tracker := streak.NewTracker(loc)
	m := metrics.New()

	var lbCache leaderboard.Cache
	if c := cache.New(rdb, cfg.LeaderboardTTL); c != nil {
		lbCache = c
	}
	leaderboardService := leaderboard.NewService(leaderboardRepo, lbCache)

	userService := users.NewService(userRepo, tokens, users.WithInvalidator(leaderboardService))
	habitService := habits.NewService(habitRepo, loc)
	inventoryService := inventory.NewService(inventoryRepo, inventory.NewTransactor(pool))

	orchestrator := completion.NewOrchestrator(
		completion.NewPgTxRunner(pool),
		tracker,
		rewards.NewGenerator(rewards.NewSource(seed)),
		completion.WithRecorder(m),
		completion.WithInvalidator(leaderboardService),
	)
	streakService := streak.NewService(habitRepo, notifier, tracker, cfg.StreakReminderThreshold)

	// === 6. HTTP ===
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	router := server.NewRouter(server.Deps{
		Tokens:      tokens,
		RateLimiter: limiter,
		Metrics:     m,
		Health:      pool,
		Users:       users.NewHandler(userService),
		Habits:      habits.NewHandler(habitService),
		Completion:  completion.NewHandler(orchestrator),
		Inventory:   inventory.NewHandler(inventoryService),
		Leaderboard: leaderboard.NewHandler(leaderboardService),
	})
	srv := server.New(router, server.Options{
		Addr:            cfg.HTTPAddr,
		ReadTimeout:     cfg.HTTPReadTimeout,
		WriteTimeout:    cfg.HTTPWriteTimeout,
		ShutdownTimeout: cfg.HTTPShutdownTimeout,
	})

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(streakService, loc, cfg.FeatureRemindersEnabled)

	return &App{
		Server:      srv,
		Scheduler:   scheduler,
		DB:          pool,
		Redis:       rdb,
		RateLimiter: limiter,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.RateLimiter.Close()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.WithError(err).Warn("Ошибка закрытия Redis")
		}
	}
	a.DB.Close()
}

// connectRedis подключает кэш рейтинга. Ошибка подключения не фатальна:
// рейтинг тогда читается напрямую из БД.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" || !cfg.FeatureLeaderboardCache {
		log.Info("Кэш рейтинга выключен")
		return nil
	}
	rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Warn("Redis недоступен, кэш рейтинга выключен")
		return nil
	}
	log.WithField("addr", cfg.RedisAddr).Info("Подключение к Redis установлено")
	return rdb
}
