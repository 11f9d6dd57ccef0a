package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "UTC", cfg.AppTimezone)
	assert.Equal(t, int64(0), cfg.RewardSeed)
	assert.Equal(t, 7, cfg.StreakReminderThreshold)
	assert.Empty(t, cfg.RedisAddr)
	assert.True(t, cfg.FeatureRemindersEnabled)
	assert.Equal(t, "postgres://habits:pw@postgres:5432/habit_casino?sslmode=disable", cfg.DatabaseDSN())
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_TIMEZONE", "Europe/Moscow")

	cfg, err := Load()
	require.NoError(t, err)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DBMaxConns:              10,
			DBMinConns:              1,
			JWTSecret:               "a",
			JWTRefreshSecret:        "b",
			AccessTokenTTL:          time.Minute,
			RefreshTokenTTL:         time.Hour,
			RateLimitPerMinute:      10,
			StreakReminderThreshold: 3,
			AppTimezone:             "UTC",
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cases := map[string]func(*Config){
		"same secrets": func(c *Config) { c.JWTRefreshSecret = c.JWTSecret },
		"pool sizes":   func(c *Config) { c.DBMinConns = 20 },
		"zero ttl":     func(c *Config) { c.AccessTokenTTL = 0 },
		"rate limit":   func(c *Config) { c.RateLimitPerMinute = 0 },
		"threshold":    func(c *Config) { c.StreakReminderThreshold = 0 },
		"bad timezone": func(c *Config) { c.AppTimezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
