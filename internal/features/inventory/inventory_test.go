package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/habit-casino/internal/common"
)

// memInventory — хранилище в памяти; транзакция применяет изменения только при успехе.
type memInventory struct {
	items   map[int64]*Item
	theme   map[int64]string
	badge   map[int64]*string
	syncLog []ItemType
}

func newMemInventory(items ...*Item) *memInventory {
	m := &memInventory{items: map[int64]*Item{}, theme: map[int64]string{}, badge: map[int64]*string{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memInventory) clone() *memInventory {
	c := newMemInventory()
	for id, it := range m.items {
		cp := *it
		c.items[id] = &cp
	}
	for k, v := range m.theme {
		c.theme[k] = v
	}
	for k, v := range m.badge {
		c.badge[k] = v
	}
	return c
}

func (m *memInventory) List(_ context.Context, userID int64, f Filter) ([]*Item, error) {
	var out []*Item
	for id := int64(len(m.items)); id >= 1; id-- {
		it, ok := m.items[id]
		if !ok || it.UserID != userID {
			continue
		}
		if (f.Type == "" || it.Type == f.Type) && (f.Rarity == "" || it.Rarity == f.Rarity) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memInventory) ListEquipped(ctx context.Context, userID int64) ([]*Item, error) {
	all, _ := m.List(ctx, userID, Filter{})
	var out []*Item
	for _, it := range all {
		if it.IsEquipped {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memInventory) GetForUpdate(_ context.Context, id, userID int64) (*Item, error) {
	it, ok := m.items[id]
	if !ok || it.UserID != userID {
		return nil, common.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memInventory) ListByTypeForUpdate(ctx context.Context, userID int64, t ItemType) ([]*Item, error) {
	return m.List(ctx, userID, Filter{Type: t})
}

func (m *memInventory) SetEquipped(_ context.Context, id int64, equipped bool) error {
	m.items[id].IsEquipped = equipped
	return nil
}

func (m *memInventory) SyncProfile(_ context.Context, userID int64, t ItemType, equipped *Item) error {
	m.syncLog = append(m.syncLog, t)
	switch t {
	case TypeTheme:
		m.theme[userID] = "default"
		if equipped != nil {
			m.theme[userID] = equipped.Name
		}
	case TypeBadge:
		m.badge[userID] = nil
		if equipped != nil {
			name := equipped.Name
			m.badge[userID] = &name
		}
	}
	return nil
}

func (m *memInventory) InTx(_ context.Context, fn func(EquipStore) error) error {
	work := m.clone()
	if err := fn(work); err != nil {
		return err
	}
	m.items, m.theme, m.badge = work.items, work.theme, work.badge
	m.syncLog = append(m.syncLog, work.syncLog...)
	return nil
}

func themes() []*Item {
	return []*Item{
		{ID: 1, UserID: 7, Type: TypeTheme, Name: "Forest Green", Rarity: RarityCommon, IsEquipped: true},
		{ID: 2, UserID: 7, Type: TypeTheme, Name: "Ocean Blue", Rarity: RarityCommon},
		{ID: 3, UserID: 7, Type: TypeTheme, Name: "Cosmic", Rarity: RarityEpic},
		{ID: 4, UserID: 7, Type: TypeBadge, Name: "Consistent", Rarity: RarityCommon, IsEquipped: true},
		{ID: 5, UserID: 8, Type: TypeTheme, Name: "Diamond", Rarity: RarityEpic, IsEquipped: true},
	}
}

func TestEquipUnequipsSiblings(t *testing.T) {
	items := themes()[:3]
	changed, err := Equip(items, 3, true)
	require.NoError(t, err)

	assert.Len(t, changed, 2)
	assert.False(t, items[0].IsEquipped)
	assert.False(t, items[1].IsEquipped)
	assert.True(t, items[2].IsEquipped)
	assert.Same(t, items[2], EquippedOf(items))
}

func TestEquipUnequipLeavesSiblings(t *testing.T) {
	items := themes()[:3]
	changed, err := Equip(items, 2, false)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.True(t, items[0].IsEquipped)

	_, err = Equip(items, 99, true)
	assert.ErrorIs(t, err, common.ErrItemNotFound)
}

func TestServiceEquipKeepsOneThemePerUser(t *testing.T) {
	store := newMemInventory(themes()...)
	svc := NewService(store, store)
	ctx := context.Background()

	yes := true
	item, err := svc.Equip(ctx, 7, 3, &yes)
	require.NoError(t, err)
	assert.True(t, item.IsEquipped)

	equipped := 0
	for _, it := range store.items {
		if it.UserID == 7 && it.Type == TypeTheme && it.IsEquipped {
			equipped++
			assert.Equal(t, int64(3), it.ID)
		}
	}
	assert.Equal(t, 1, equipped)
	assert.Equal(t, "Cosmic", store.theme[7])

	// другой пользователь и другой тип не затронуты
	assert.True(t, store.items[5].IsEquipped)
	assert.True(t, store.items[4].IsEquipped)
}

func TestServiceEquipToggle(t *testing.T) {
	store := newMemInventory(themes()...)
	svc := NewService(store, store)
	ctx := context.Background()

	item, err := svc.Equip(ctx, 7, 4, nil)
	require.NoError(t, err)
	assert.False(t, item.IsEquipped)
	assert.Nil(t, store.badge[7])

	item, err = svc.Equip(ctx, 7, 4, nil)
	require.NoError(t, err)
	assert.True(t, item.IsEquipped)
	require.NotNil(t, store.badge[7])
	assert.Equal(t, "Consistent", *store.badge[7])

	no := false
	_, err = svc.Equip(ctx, 7, 1, &no)
	require.NoError(t, err)
	assert.Equal(t, "default", store.theme[7])
}

func TestServiceEquipForeignItem(t *testing.T) {
	store := newMemInventory(themes()...)
	svc := NewService(store, store)

	_, err := svc.Equip(context.Background(), 7, 5, nil)
	assert.ErrorIs(t, err, common.ErrItemNotFound)
	assert.True(t, store.items[5].IsEquipped)
}

func TestListGroupsAndCounts(t *testing.T) {
	store := newMemInventory(themes()...)
	svc := NewService(store, store)
	ctx := context.Background()

	listing, err := svc.List(ctx, 7, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, listing.Stats.Total)
	assert.Equal(t, 2, listing.Stats.Equipped)
	assert.Equal(t, 3, listing.Stats.ByType[TypeTheme])
	assert.Equal(t, 0, listing.Stats.ByType[TypeAvatar])
	assert.Equal(t, 1, listing.Stats.ByRarity[RarityEpic])
	assert.Len(t, listing.Grouped[TypeTheme], 3)
	assert.NotNil(t, listing.Grouped[TypeEffect])
	assert.Equal(t, int64(4), listing.Items[0].ID)

	listing, err = svc.List(ctx, 7, Filter{Rarity: RarityEpic})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "Cosmic", listing.Items[0].Name)

	_, err = svc.List(ctx, 7, Filter{Type: "hat"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestEquippedSlots(t *testing.T) {
	store := newMemInventory(themes()...)
	svc := NewService(store, store)

	eq, err := svc.Equipped(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, eq.Theme)
	assert.Equal(t, "Forest Green", eq.Theme.Name)
	require.NotNil(t, eq.Badge)
	assert.Nil(t, eq.Avatar)
	assert.Nil(t, eq.Effect)
}
