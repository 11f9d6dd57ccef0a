// Package app — migrations.go содержит встроенные SQL-миграции схемы.
package app

import "serotonyl.ru/habit-casino/internal/db/postgres"

// migrations применяются по порядку; уже применённые версии пропускаются.
var migrations = []postgres.Migration{
	{Version: 1, SQL: migration001Users},
	{Version: 2, SQL: migration002Habits},
	{Version: 3, SQL: migration003Loot},
}

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(30) NOT NULL,
    email VARCHAR(255) NOT NULL,
    password_hash TEXT NOT NULL,
    xp INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
    level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
    total_habits_completed INTEGER NOT NULL DEFAULT 0 CHECK (total_habits_completed >= 0),
    streak_protection_tokens INTEGER NOT NULL DEFAULT 0 CHECK (streak_protection_tokens >= 0),
    current_theme VARCHAR(100) NOT NULL DEFAULT 'default',
    current_badge VARCHAR(100),
    telegram_chat_id BIGINT,
    last_login TIMESTAMPTZ,
    refresh_token TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (LOWER(username));
CREATE INDEX IF NOT EXISTS idx_users_xp ON users (xp DESC);
`

var migration002Habits = `
CREATE TABLE IF NOT EXISTS habits (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    name VARCHAR(100) NOT NULL,
    icon VARCHAR(16) NOT NULL DEFAULT '⭐',
    description VARCHAR(500) NOT NULL DEFAULT '',
    streak INTEGER NOT NULL DEFAULT 0 CHECK (streak >= 0),
    best_streak INTEGER NOT NULL DEFAULT 0 CHECK (best_streak >= streak),
    last_completed TIMESTAMPTZ,
    total_completions INTEGER NOT NULL DEFAULT 0 CHECK (total_completions >= 0),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    reminded_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_habits_user_active ON habits (user_id, is_active);

CREATE TABLE IF NOT EXISTS habit_completions (
    id BIGSERIAL PRIMARY KEY,
    habit_id BIGINT NOT NULL REFERENCES habits(id),
    completed_at TIMESTAMPTZ NOT NULL,
    reward_kind VARCHAR(16) NOT NULL CHECK (reward_kind IN ('nothing', 'xp', 'token', 'loot')),
    reward_amount INTEGER NOT NULL DEFAULT 0,
    reward_item VARCHAR(100)
);

CREATE INDEX IF NOT EXISTS idx_completions_habit_date ON habit_completions (habit_id, completed_at DESC);
CREATE INDEX IF NOT EXISTS idx_completions_date ON habit_completions (completed_at);
`

var migration003Loot = `
CREATE TABLE IF NOT EXISTS loot_items (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    type VARCHAR(16) NOT NULL CHECK (type IN ('theme', 'badge', 'avatar', 'effect')),
    name VARCHAR(100) NOT NULL,
    rarity VARCHAR(16) NOT NULL CHECK (rarity IN ('common', 'rare', 'epic', 'legendary')),
    description TEXT NOT NULL DEFAULT '',
    icon VARCHAR(16) NOT NULL DEFAULT '🎁',
    is_equipped BOOLEAN NOT NULL DEFAULT FALSE,
    from_habit BIGINT REFERENCES habits(id),
    acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_loot_user ON loot_items (user_id, acquired_at DESC);
-- Не больше одного надетого предмета каждого типа.
CREATE UNIQUE INDEX IF NOT EXISTS idx_loot_one_equipped
    ON loot_items (user_id, type) WHERE is_equipped;
`
