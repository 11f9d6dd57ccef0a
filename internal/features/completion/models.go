// Package completion выполняет привычку целиком: проверка «уже сегодня»,
// продление серии, розыгрыш и начисление награды, запись истории.
// Всё, что меняется в одном запросе, сохраняется в одной транзакции.
// models.go описывает результат выполнения и порты хранилища.
package completion

import (
	"context"

	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/inventory"
	"serotonyl.ru/habit-casino/internal/features/rewards"
	"serotonyl.ru/habit-casino/internal/features/users"
)

// Result — итог успешного выполнения.
type Result struct {
	Habit  *habits.Habit   `json:"habit"`
	Reward rewards.Reward  `json:"reward"`
	User   *users.User     `json:"user"` // Без секретов
	Streak int             `json:"streak"`
	Item   *inventory.Item `json:"item,omitempty"` // Выпавший предмет
}

// HabitStore — операции с привычкой внутри транзакции.
type HabitStore interface {
	GetActiveForUpdate(ctx context.Context, id, userID int64) (*habits.Habit, error)
	Save(ctx context.Context, h *habits.Habit) error
	AppendCompletion(ctx context.Context, c *habits.Completion) error
}

// UserStore — операции с пользователем внутри транзакции.
type UserStore interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*users.User, error)
	Save(ctx context.Context, u *users.User) error
}

// UnitOfWork — хранилища, работающие на одной транзакции.
type UnitOfWork interface {
	Habits() HabitStore
	Users() UserStore
	Loot() rewards.LootCreator
}

// TxRunner выполняет fn в транзакции: ошибка fn откатывает всё.
type TxRunner interface {
	InTx(ctx context.Context, fn func(UnitOfWork) error) error
}

// Recorder принимает события для метрик.
type Recorder interface {
	CompletionOutcome(outcome string)
	RewardGranted(kind string, rarity string)
}

// Invalidator сбрасывает кэши, зависящие от опыта и выполнений.
type Invalidator interface {
	InvalidateLeaderboard(ctx context.Context) error
}

// Исходы выполнения для метрик.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

type nopRecorder struct{}

func (nopRecorder) CompletionOutcome(string)     {}
func (nopRecorder) RewardGranted(string, string) {}
