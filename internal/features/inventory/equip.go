// Package inventory — equip.go содержит правило «один надетый предмет на слот».
package inventory

import "serotonyl.ru/habit-casino/internal/common"

// Equip надевает или снимает предмет targetID среди предметов одного типа.
// При надевании все остальные предметы этого типа снимаются.
// Возвращает предметы, у которых изменилось состояние.
func Equip(items []*Item, targetID int64, equip bool) ([]*Item, error) {
	var target *Item
	for _, it := range items {
		if it.ID == targetID {
			target = it
			break
		}
	}
	if target == nil {
		return nil, common.ErrItemNotFound
	}

	var changed []*Item
	for _, it := range items {
		want := it.IsEquipped
		switch {
		case it == target:
			want = equip
		case equip:
			want = false
		}
		if it.IsEquipped != want {
			it.IsEquipped = want
			changed = append(changed, it)
		}
	}
	return changed, nil
}

// EquippedOf возвращает надетый предмет из списка или nil.
func EquippedOf(items []*Item) *Item {
	for _, it := range items {
		if it.IsEquipped {
			return it
		}
	}
	return nil
}

// Summarize собирает сводку и группировку по типам.
func Summarize(items []*Item) Listing {
	l := Listing{
		Items:   items,
		Grouped: make(map[ItemType][]*Item, len(Types)),
		Stats: Stats{
			Total:    len(items),
			ByRarity: make(map[Rarity]int, len(Rarities)),
			ByType:   make(map[ItemType]int, len(Types)),
		},
	}
	for _, t := range Types {
		l.Grouped[t] = []*Item{}
		l.Stats.ByType[t] = 0
	}
	for _, r := range Rarities {
		l.Stats.ByRarity[r] = 0
	}
	for _, it := range items {
		l.Grouped[it.Type] = append(l.Grouped[it.Type], it)
		l.Stats.ByType[it.Type]++
		l.Stats.ByRarity[it.Rarity]++
		if it.IsEquipped {
			l.Stats.Equipped++
		}
	}
	if l.Items == nil {
		l.Items = []*Item{}
	}
	return l
}
