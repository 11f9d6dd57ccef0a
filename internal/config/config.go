// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Database ---
	// В Docker дефолт "postgres" (имя сервиса в docker-compose), для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"habits"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"habit_casino"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- HTTP ---
	HTTPAddr            string        `envconfig:"HTTP_ADDR" default:":5000"`
	HTTPReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	HTTPWriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	HTTPShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`

	// --- Auth ---
	JWTSecret        string        `envconfig:"JWT_SECRET" required:"true"`
	JWTRefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" required:"true"`
	AccessTokenTTL   time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL  time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Все календарные дни (стрики, "сегодня", недельный лидерборд) считаются в этой зоне.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	// --- Rewards ---
	// 0 = случайный сид при старте. Фиксированный сид нужен для воспроизводимых прогонов.
	RewardSeed int64 `envconfig:"REWARD_SEED" default:"0"`

	// --- Streak ---
	StreakReminderThreshold int `envconfig:"STREAK_REMINDER_THRESHOLD" default:"7"`

	// --- Redis (кэш лидерборда). Пустой адрес = кэш выключен ---
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	LeaderboardTTL time.Duration `envconfig:"LEADERBOARD_CACHE_TTL" default:"30s"`

	// --- Telegram (напоминания). Пустой токен = уведомления выключены ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`

	// --- Rate Limiting (на auth-эндпоинты, по IP) ---
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"20"`

	// --- Feature Flags ---
	FeatureRemindersEnabled bool `envconfig:"FEATURE_REMINDERS_ENABLED" default:"true"`
	FeatureLeaderboardCache bool `envconfig:"FEATURE_LEADERBOARD_CACHE" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Location возвращает часовой пояс APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	return loc, nil
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.JWTSecret == c.JWTRefreshSecret {
		return fmt.Errorf("JWT_SECRET и JWT_REFRESH_SECRET должны различаться")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL и REFRESH_TOKEN_TTL должны быть > 0")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE должен быть > 0")
	}
	if c.StreakReminderThreshold < 1 {
		return fmt.Errorf("STREAK_REMINDER_THRESHOLD должен быть >= 1")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
