// Package leaderboard строит рейтинги пользователей: за всё время (по опыту)
// и за неделю (по числу выполнений).
// models.go описывает строки рейтинга и сводку.
package leaderboard

// Timeframe — период рейтинга.
type Timeframe string

const (
	AllTime Timeframe = "all-time"
	Weekly  Timeframe = "weekly"
)

// Лимиты размера рейтинга.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Entry — строка рейтинга.
type Entry struct {
	Rank                 int     `json:"rank"`
	UserID               int64   `json:"user_id"`
	Username             string  `json:"username"`
	XP                   int     `json:"xp"`
	Level                int     `json:"level"`
	TotalHabitsCompleted int     `json:"total_habits_completed"`
	CurrentBadge         *string `json:"current_badge"`
	WeeklyCompletions    *int    `json:"weekly_completions,omitempty"`
	IsCurrentUser        bool    `json:"is_current_user"`
}

// Board — рейтинг с позицией текущего пользователя.
type Board struct {
	Leaderboard []Entry   `json:"leaderboard"`
	CurrentUser *Entry    `json:"current_user"`
	Timeframe   Timeframe `json:"timeframe"`
	Limit       int       `json:"limit"`
}

// Totals — агрегаты по всем пользователям.
type Totals struct {
	TotalUsers           int    `json:"total_users"`
	TotalHabitsCompleted int    `json:"total_habits_completed"`
	AverageXP            int    `json:"average_xp"`
	TopUser              *Entry `json:"top_user"`
}

// Stats — сводка рейтинга для текущего пользователя.
type Stats struct {
	Totals
	CurrentUserRank int `json:"current_user_rank"`
}
