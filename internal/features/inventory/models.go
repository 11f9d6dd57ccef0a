// Package inventory хранит коллекционные предметы пользователя и следит,
// чтобы каждого типа был надет не больше чем один.
// models.go описывает предмет, его тип и редкость.
package inventory

import "time"

// ItemType — слот, в который надевается предмет.
type ItemType string

const (
	TypeTheme  ItemType = "theme"
	TypeBadge  ItemType = "badge"
	TypeAvatar ItemType = "avatar"
	TypeEffect ItemType = "effect"
)

// Types — все типы предметов в порядке отображения.
var Types = []ItemType{TypeTheme, TypeBadge, TypeAvatar, TypeEffect}

// Valid сообщает, известен ли тип.
func (t ItemType) Valid() bool {
	switch t {
	case TypeTheme, TypeBadge, TypeAvatar, TypeEffect:
		return true
	}
	return false
}

// Rarity — редкость предмета.
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"

	// RarityLegendary допустима в хранилище, но генератором наград не выдаётся.
	RarityLegendary Rarity = "legendary"
)

// Rarities — все редкости от частой к редкой.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Valid сообщает, известна ли редкость.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// DefaultIcon — иконка предмета без собственной.
const DefaultIcon = "🎁"

// Item — предмет в инвентаре. Предметы не удаляются.
type Item struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Type        ItemType  `db:"type" json:"type"`
	Name        string    `db:"name" json:"name"`
	Rarity      Rarity    `db:"rarity" json:"rarity"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	IsEquipped  bool      `db:"is_equipped" json:"is_equipped"`
	FromHabit   *int64    `db:"from_habit" json:"from_habit"` // Привычка, за которую выпал
	AcquiredAt  time.Time `db:"acquired_at" json:"acquired_at"`
}

// Filter — необязательные фильтры списка.
type Filter struct {
	Type   ItemType
	Rarity Rarity
}

// Stats — сводка по инвентарю.
type Stats struct {
	Total    int              `json:"total"`
	ByRarity map[Rarity]int   `json:"by_rarity"`
	ByType   map[ItemType]int `json:"by_type"`
	Equipped int              `json:"equipped"`
}

// Listing — ответ на запрос инвентаря.
type Listing struct {
	Items   []*Item              `json:"items"`
	Grouped map[ItemType][]*Item `json:"grouped"`
	Stats   Stats                `json:"stats"`
}

// Equipped — надетые предметы, по одному на слот (nil = пусто).
type Equipped struct {
	Theme  *Item `json:"theme"`
	Badge  *Item `json:"badge"`
	Avatar *Item `json:"avatar"`
	Effect *Item `json:"effect"`
}
