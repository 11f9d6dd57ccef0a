// Package rewards — models.go описывает результат розыгрыша награды.
package rewards

import "serotonyl.ru/habit-casino/internal/features/inventory"

// Kind — вид награды.
type Kind string

const (
	KindNothing Kind = "nothing"
	KindXP      Kind = "xp"
	KindToken   Kind = "token"
	KindLoot    Kind = "loot"
)

// Границы интервалов основного броска r ∈ [0, 1).
const (
	nothingBelow = 0.20 // [0, 0.20)    — ничего
	xpBelow      = 0.70 // [0.20, 0.70) — опыт
	tokenBelow   = 0.85 // [0.70, 0.85) — жетон защиты серии, иначе предмет
)

// Пороги редкости для броска r2 − бонус_серии.
const (
	epicBelow = 0.10
	rareBelow = 0.40
)

// Параметры награды опытом и жетоном.
const (
	BaseXP          = 10
	XPPerStreakStep = 5 // Прибавка за каждые StreakStep дней серии
	StreakStep      = 5
	MaxRandomXP     = 5 // Случайная добавка 0..MaxRandomXP включительно
	TokenXP         = 5
	TokenAmount     = 1

	StreakBonusPerDay = 0.01
	MaxStreakBonus    = 0.20
)

// Reward — итог розыгрыша. Создаётся генератором и дальше не меняется.
type Reward struct {
	Kind    Kind             `json:"type"`
	Amount  int              `json:"amount"`
	XP      int              `json:"xp"`
	Rarity  inventory.Rarity `json:"rarity,omitempty"`
	Item    *CatalogItem     `json:"item,omitempty"`
	Message string           `json:"message"`
}

// ItemName возвращает имя выпавшего предмета или nil.
func (r Reward) ItemName() *string {
	if r.Item == nil {
		return nil
	}
	name := r.Item.Name
	return &name
}
