// Package rewards — applicator.go начисляет разыгранную награду пользователю.
package rewards

import (
	"context"
	"fmt"
	"time"

	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/inventory"
	"serotonyl.ru/habit-casino/internal/features/users"
)

// LootCreator сохраняет новый предмет. В движке это репозиторий инвентаря
// на транзакции выполнения привычки.
type LootCreator interface {
	CreateItem(ctx context.Context, item *inventory.Item) error
}

// Apply начисляет награду: опыт (с пересчётом уровня), счётчик выполнений,
// жетон или новый ненадетый предмет, привязанный к привычке.
//
// Пользователь меняется только в памяти; сохраняет его вызывающий в той же
// транзакции. Ошибка создания предмета возвращается как есть.
func Apply(ctx context.Context, loot LootCreator, u *users.User, h *habits.Habit, r Reward, now time.Time) (*inventory.Item, error) {
	u.AddXP(r.XP)
	u.TotalHabitsCompleted++

	switch r.Kind {
	case KindToken:
		u.StreakProtectionTokens += r.Amount

	case KindLoot:
		if r.Item == nil {
			return nil, fmt.Errorf("награда-предмет без предмета (rarity=%s)", r.Rarity)
		}
		habitID := h.ID
		item := &inventory.Item{
			UserID:      u.ID,
			Type:        r.Item.Type,
			Name:        r.Item.Name,
			Rarity:      r.Rarity,
			Description: r.Item.Description,
			Icon:        r.Item.Icon,
			FromHabit:   &habitID,
			AcquiredAt:  now,
		}
		if err := loot.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("ошибка выдачи предмета: %w", err)
		}
		return item, nil
	}
	return nil, nil
}
