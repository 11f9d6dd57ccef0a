// Package habits управляет привычками пользователя: CRUD, история выполнений
// и статистика.
// models.go описывает привычку и запись в её истории.
package habits

import "time"

// DefaultIcon — иконка привычки, если пользователь её не выбрал.
const DefaultIcon = "⭐"

// Ограничения на текстовые поля.
const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
)

// Habit — привычка, которую пользователь выполняет раз в календарный день.
type Habit struct {
	ID               int64      `db:"id" json:"id"`
	UserID           int64      `db:"user_id" json:"user_id"`
	Name             string     `db:"name" json:"name"`
	Icon             string     `db:"icon" json:"icon"`
	Description      string     `db:"description" json:"description"`
	Streak           int        `db:"streak" json:"streak"`                       // Дней подряд
	BestStreak       int        `db:"best_streak" json:"best_streak"`             // Рекорд, не убывает
	LastCompleted    *time.Time `db:"last_completed" json:"last_completed"`       // nil = ни разу
	TotalCompletions int        `db:"total_completions" json:"total_completions"` // Только растёт
	IsActive         bool       `db:"is_active" json:"is_active"`
	RemindedAt       *time.Time `db:"reminded_at" json:"-"` // Последнее напоминание о стрике
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// SetStreak меняет серию и подтягивает рекорд.
func (h *Habit) SetStreak(n int) {
	h.Streak = n
	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
}

// Normalize восстанавливает инварианты перед записью.
func (h *Habit) Normalize() {
	if h.Streak < 0 {
		h.Streak = 0
	}
	if h.BestStreak < h.Streak {
		h.BestStreak = h.Streak
	}
	if h.Icon == "" {
		h.Icon = DefaultIcon
	}
}

// Completion — запись в истории выполнений. История только дополняется.
type Completion struct {
	ID           int64     `db:"id" json:"id"`
	HabitID      int64     `db:"habit_id" json:"habit_id"`
	Date         time.Time `db:"completed_at" json:"date"`
	RewardKind   string    `db:"reward_kind" json:"reward"`
	RewardAmount int       `db:"reward_amount" json:"reward_amount"`
	RewardItem   *string   `db:"reward_item" json:"reward_item"` // Имя выпавшего предмета
}

// HabitUpdate — частичное обновление. nil = поле не меняется.
type HabitUpdate struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// Pagination — параметры страницы истории.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HistoryPage — страница истории выполнений.
type HistoryPage struct {
	Habit      HabitRef     `json:"habit"`
	History    []Completion `json:"history"`
	Pagination Pagination   `json:"pagination"`
}

// HabitRef — краткое описание привычки в ответах.
type HabitRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Stats — сводка по активным привычкам пользователя.
type Stats struct {
	TotalHabits          int     `json:"total_habits"`
	TotalCompletions     int     `json:"total_completions"`
	AverageStreak        float64 `json:"average_streak"`
	BestStreak           int     `json:"best_streak"`
	ActiveStreaks        int     `json:"active_streaks"`
	HabitsCompletedToday int     `json:"habits_completed_today"`
}

// ReminderTarget — привычка с длинной серией, о которой стоит напомнить.
type ReminderTarget struct {
	HabitID  int64
	UserID   int64
	ChatID   int64
	Username string
	Name     string
	Icon     string
	Streak   int
}
