// Package rewards — generator.go разыгрывает награду за выполнение привычки.
package rewards

import (
	"fmt"

	"serotonyl.ru/habit-casino/internal/features/inventory"
)

// Generator разыгрывает награды из внедрённого источника случайности.
// Розыгрыш никогда не завершается ошибкой.
type Generator struct {
	src Source
}

// NewGenerator создаёт генератор.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// Generate разыгрывает награду для серии streak (уже после продления).
//
//	r < 0.20        → ничего
//	0.20 ≤ r < 0.70 → опыт: 10 + 5·⌊streak/5⌋ + U{0..5}
//	0.70 ≤ r < 0.85 → жетон защиты серии (+5 опыта)
//	r ≥ 0.85        → предмет, редкость по r2 − min(0.01·streak, 0.20)
func (g *Generator) Generate(streak int) Reward {
	if streak < 0 {
		streak = 0
	}

	r := g.src.Float64()
	switch {
	case r < nothingBelow:
		return Reward{Kind: KindNothing, Message: "Повезёт в следующий раз! 🎰"}

	case r < xpBelow:
		xp := BaseXP + XPPerStreakStep*(streak/StreakStep) + g.src.Intn(MaxRandomXP+1)
		return Reward{
			Kind:    KindXP,
			Amount:  xp,
			XP:      xp,
			Message: fmt.Sprintf("+%d XP! 🌟", xp),
		}

	case r < tokenBelow:
		return Reward{
			Kind:    KindToken,
			Amount:  TokenAmount,
			XP:      TokenXP,
			Message: "Жетон защиты серии! 🛡️",
		}

	default:
		rarity := RollRarity(g.src.Float64(), streak)
		items := Catalog[rarity]
		item := items[g.src.Intn(len(items))]
		return Reward{
			Kind:    KindLoot,
			XP:      LootXP[rarity],
			Rarity:  rarity,
			Item:    &item,
			Message: fmt.Sprintf("Выпал предмет %s: %s %s", rarity, item.Name, item.Icon),
		}
	}
}

// StreakBonus — сдвиг броска редкости в пользу редких предметов.
func StreakBonus(streak int) float64 {
	bonus := StreakBonusPerDay * float64(streak)
	if bonus > MaxStreakBonus {
		return MaxStreakBonus
	}
	return bonus
}

// RollRarity выбирает редкость по броску r2 ∈ [0, 1) и серии.
func RollRarity(r2 float64, streak int) inventory.Rarity {
	roll := r2 - StreakBonus(streak)
	switch {
	case roll < epicBelow:
		return inventory.RarityEpic
	case roll < rareBelow:
		return inventory.RarityRare
	default:
		return inventory.RarityCommon
	}
}
