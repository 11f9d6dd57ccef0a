// Package users управляет пользователями: регистрацией, входом, профилем,
// опытом и уровнем.
// models.go описывает структуру пользователя и производные поля.
package users

import "time"

// XPPerLevel — сколько опыта нужно на один уровень.
const XPPerLevel = 100

// DefaultTheme — тема, когда ни один предмет-тема не надет.
const DefaultTheme = "default"

// User — корневой агрегат. Привычки и предметы ссылаются на него по ID.
type User struct {
	ID                     int64      `db:"id" json:"id"`
	Username               string     `db:"username" json:"username"`
	Email                  string     `db:"email" json:"email"`
	PasswordHash           string     `db:"password_hash" json:"-"`
	XP                     int        `db:"xp" json:"xp"`                                         // Только растёт
	Level                  int        `db:"level" json:"level"`                                   // Всегда XP/100 + 1
	TotalHabitsCompleted   int        `db:"total_habits_completed" json:"total_habits_completed"` // По всем привычкам
	StreakProtectionTokens int        `db:"streak_protection_tokens" json:"streak_protection_tokens"`
	CurrentTheme           string     `db:"current_theme" json:"current_theme"` // Имя надетой темы
	CurrentBadge           *string    `db:"current_badge" json:"current_badge"` // Имя надетого значка
	TelegramChatID         *int64     `db:"telegram_chat_id" json:"telegram_chat_id"`
	LastLogin              *time.Time `db:"last_login" json:"last_login"`
	RefreshToken           *string    `db:"refresh_token" json:"-"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
}

// LevelForXP вычисляет уровень по опыту: floor(xp/100) + 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// AddXP начисляет опыт и сразу пересчитывает уровень.
func (u *User) AddXP(amount int) {
	u.XP += amount
	u.Normalize()
}

// Normalize восстанавливает производные поля.
// Репозиторий вызывает его перед каждой записью, поэтому уровень
// не может разойтись с опытом ни на одном пути изменения.
func (u *User) Normalize() {
	u.Level = LevelForXP(u.XP)
	if u.CurrentTheme == "" {
		u.CurrentTheme = DefaultTheme
	}
}

// WithoutCredentials убирает секреты (хеш пароля, refresh-токен) из копии пользователя.
// JSON-теги и так скрывают их, копия нужна для логов и ответов движка.
func (u *User) WithoutCredentials() *User {
	c := *u
	c.PasswordHash = ""
	c.RefreshToken = nil
	return &c
}

// ProfileUpdate — частичное обновление профиля. nil = поле не меняется,
// TelegramChatID = 0 отвязывает чат.
// Тема и значок здесь не меняются: их выставляет надевание предмета.
type ProfileUpdate struct {
	Username       *string `json:"username"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
}
