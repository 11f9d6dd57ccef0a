// Package inventory — service.go содержит бизнес-логику инвентаря.
package inventory

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
)

// Store — чтение инвентаря вне транзакций.
type Store interface {
	List(ctx context.Context, userID int64, f Filter) ([]*Item, error)
	ListEquipped(ctx context.Context, userID int64) ([]*Item, error)
}

// EquipStore — операции внутри транзакции смены предмета.
type EquipStore interface {
	GetForUpdate(ctx context.Context, id, userID int64) (*Item, error)
	ListByTypeForUpdate(ctx context.Context, userID int64, t ItemType) ([]*Item, error)
	SetEquipped(ctx context.Context, id int64, equipped bool) error
	SyncProfile(ctx context.Context, userID int64, t ItemType, equipped *Item) error
}

// TxRunner открывает транзакцию для смены предмета.
type TxRunner interface {
	InTx(ctx context.Context, fn func(EquipStore) error) error
}

// Service управляет инвентарём.
type Service struct {
	store Store
	tx    TxRunner
}

// NewService создаёт сервис инвентаря.
func NewService(store Store, tx TxRunner) *Service {
	return &Service{store: store, tx: tx}
}

// List возвращает предметы с группировкой по типам и сводкой.
func (s *Service) List(ctx context.Context, userID int64, f Filter) (*Listing, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: неизвестный тип предмета %q", common.ErrInvalidInput, f.Type)
	}
	if f.Rarity != "" && !f.Rarity.Valid() {
		return nil, fmt.Errorf("%w: неизвестная редкость %q", common.ErrInvalidInput, f.Rarity)
	}
	items, err := s.store.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	listing := Summarize(items)
	return &listing, nil
}

// Equip надевает (equip=true), снимает (false) или переключает (nil) предмет.
// Остальные предметы того же типа снимаются в той же транзакции,
// тема и значок переносятся в профиль.
func (s *Service) Equip(ctx context.Context, userID, itemID int64, equip *bool) (*Item, error) {
	var result *Item
	err := s.tx.InTx(ctx, func(st EquipStore) error {
		item, err := st.GetForUpdate(ctx, itemID, userID)
		if err != nil {
			return err
		}
		siblings, err := st.ListByTypeForUpdate(ctx, userID, item.Type)
		if err != nil {
			return err
		}

		want := !item.IsEquipped
		if equip != nil {
			want = *equip
		}

		changed, err := Equip(siblings, item.ID, want)
		if err != nil {
			return err
		}
		// сначала снимаем, потом надеваем: индекс idx_loot_one_equipped проверяется построчно
		for _, pass := range []bool{false, true} {
			for _, it := range changed {
				if it.IsEquipped != pass {
					continue
				}
				if err := st.SetEquipped(ctx, it.ID, it.IsEquipped); err != nil {
					return err
				}
			}
		}
		if err := st.SyncProfile(ctx, userID, item.Type, EquippedOf(siblings)); err != nil {
			return err
		}

		for _, it := range siblings {
			if it.ID == item.ID {
				result = it
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"item_id":  itemID,
		"equipped": result.IsEquipped,
	}).Debug("Предмет переключён")
	return result, nil
}

// Equipped возвращает надетые предметы по слотам.
func (s *Service) Equipped(ctx context.Context, userID int64) (*Equipped, error) {
	items, err := s.store.ListEquipped(ctx, userID)
	if err != nil {
		return nil, err
	}
	eq := &Equipped{}
	for _, it := range items {
		switch it.Type {
		case TypeTheme:
			eq.Theme = it
		case TypeBadge:
			eq.Badge = it
		case TypeAvatar:
			eq.Avatar = it
		case TypeEffect:
			eq.Effect = it
		}
	}
	return eq, nil
}
