// Package rewards — случайные награды за выполнение привычки и их начисление.
// catalog.go описывает статический каталог предметов по редкостям.
package rewards

import "serotonyl.ru/habit-casino/internal/features/inventory"

// CatalogItem — шаблон предмета, который может выпасть.
type CatalogItem struct {
	Type        inventory.ItemType `json:"type"`
	Name        string             `json:"name"`
	Icon        string             `json:"icon"`
	Description string             `json:"description"`
}

// Catalog — предметы каждой выпадающей редкости. Легендарных здесь нет.
var Catalog = map[inventory.Rarity][]CatalogItem{
	inventory.RarityCommon: {
		{Type: inventory.TypeBadge, Name: "First Steps", Icon: "👶", Description: "Started your journey"},
		{Type: inventory.TypeBadge, Name: "Consistent", Icon: "🔄", Description: "Building good habits"},
		{Type: inventory.TypeTheme, Name: "Forest Green", Icon: "🌲", Description: "Calm and natural"},
		{Type: inventory.TypeTheme, Name: "Ocean Blue", Icon: "🌊", Description: "Deep and peaceful"},
		{Type: inventory.TypeEffect, Name: "Sparkle", Icon: "✨", Description: "Add some magic"},
		{Type: inventory.TypeEffect, Name: "Glow", Icon: "💫", Description: "Shine bright"},
	},
	inventory.RarityRare: {
		{Type: inventory.TypeBadge, Name: "Streak Master", Icon: "🔥", Description: "Maintaining impressive streaks"},
		{Type: inventory.TypeBadge, Name: "Dedicated", Icon: "💪", Description: "Never giving up"},
		{Type: inventory.TypeTheme, Name: "Golden Hour", Icon: "🌅", Description: "Warm and inspiring"},
		{Type: inventory.TypeTheme, Name: "Midnight Purple", Icon: "🌙", Description: "Mysterious and elegant"},
		{Type: inventory.TypeAvatar, Name: "Warrior", Icon: "⚔️", Description: "Battle-ready avatar"},
		{Type: inventory.TypeEffect, Name: "Fire Trail", Icon: "🔥", Description: "Leave a trail of flames"},
	},
	inventory.RarityEpic: {
		{Type: inventory.TypeBadge, Name: "Legendary", Icon: "👑", Description: "Achieved greatness"},
		{Type: inventory.TypeBadge, Name: "Unstoppable", Icon: "🚀", Description: "Nothing can stop you"},
		{Type: inventory.TypeTheme, Name: "Cosmic", Icon: "🌌", Description: "Out of this world"},
		{Type: inventory.TypeTheme, Name: "Diamond", Icon: "💎", Description: "Precious and rare"},
		{Type: inventory.TypeAvatar, Name: "Phoenix", Icon: "🦅", Description: "Rise from the ashes"},
		{Type: inventory.TypeEffect, Name: "Lightning", Icon: "⚡", Description: "Electric energy"},
	},
}

// LootXP — опыт, который приносит предмет каждой редкости.
var LootXP = map[inventory.Rarity]int{
	inventory.RarityCommon: 10,
	inventory.RarityRare:   15,
	inventory.RarityEpic:   25,
}
