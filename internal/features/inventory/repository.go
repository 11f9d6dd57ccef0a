// Package inventory — repository.go выполняет операции с таблицей loot_items.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/db/postgres"
	"serotonyl.ru/habit-casino/internal/features/users"
)

// Repository предоставляет методы для работы с предметами.
type Repository struct {
	db postgres.DBTX
}

// NewRepository создаёт новый репозиторий инвентаря.
func NewRepository(db postgres.DBTX) *Repository {
	return &Repository{db: db}
}

const itemColumns = `id, user_id, type, name, rarity, description, icon, is_equipped, from_habit, acquired_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.UserID, &it.Type, &it.Name, &it.Rarity, &it.Description,
		&it.Icon, &it.IsEquipped, &it.FromHabit, &it.AcquiredAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repository) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения предметов: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения предмета: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem сохраняет новый предмет. Новый предмет всегда не надет.
func (r *Repository) CreateItem(ctx context.Context, it *Item) error {
	if it.Icon == "" {
		it.Icon = DefaultIcon
	}
	it.IsEquipped = false
	query := `
		INSERT INTO loot_items (user_id, type, name, rarity, description, icon, is_equipped, from_habit, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		it.UserID, it.Type, it.Name, it.Rarity, it.Description, it.Icon, it.FromHabit, it.AcquiredAt,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("ошибка создания предмета: %w", err)
	}
	return nil
}

// List возвращает предметы пользователя, новые первыми. Пустые поля фильтра не применяются.
func (r *Repository) List(ctx context.Context, userID int64, f Filter) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM loot_items
		WHERE user_id = $1
		  AND ($2 = '' OR type = $2)
		  AND ($3 = '' OR rarity = $3)
		ORDER BY acquired_at DESC, id DESC`, userID, string(f.Type), string(f.Rarity))
}

// ListEquipped возвращает надетые предметы пользователя.
func (r *Repository) ListEquipped(ctx context.Context, userID int64) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM loot_items
		WHERE user_id = $1 AND is_equipped = TRUE`, userID)
}

// GetForUpdate читает предмет владельца с блокировкой строки.
func (r *Repository) GetForUpdate(ctx context.Context, id, userID int64) (*Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM loot_items
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrItemNotFound
		}
		return nil, fmt.Errorf("ошибка чтения предмета: %w", err)
	}
	return it, nil
}

// ListByTypeForUpdate блокирует и возвращает все предметы пользователя одного типа.
func (r *Repository) ListByTypeForUpdate(ctx context.Context, userID int64, t ItemType) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM loot_items
		WHERE user_id = $1 AND type = $2
		ORDER BY id
		FOR UPDATE`, userID, string(t))
}

// SetEquipped меняет состояние одного предмета.
func (r *Repository) SetEquipped(ctx context.Context, id int64, equipped bool) error {
	_, err := r.db.Exec(ctx, `UPDATE loot_items SET is_equipped = $2 WHERE id = $1`, id, equipped)
	if err != nil {
		return fmt.Errorf("ошибка обновления предмета: %w", err)
	}
	return nil
}

// SyncProfile переносит надетую тему или значок в профиль пользователя.
// Для остальных типов ничего не делает.
func (r *Repository) SyncProfile(ctx context.Context, userID int64, t ItemType, equipped *Item) error {
	var err error
	switch t {
	case TypeTheme:
		theme := users.DefaultTheme
		if equipped != nil {
			theme = equipped.Name
		}
		_, err = r.db.Exec(ctx, `UPDATE users SET current_theme = $2, updated_at = NOW() WHERE id = $1`, userID, theme)
	case TypeBadge:
		var badge *string
		if equipped != nil {
			badge = &equipped.Name
		}
		_, err = r.db.Exec(ctx, `UPDATE users SET current_badge = $2, updated_at = NOW() WHERE id = $1`, userID, badge)
	}
	if err != nil {
		return fmt.Errorf("ошибка синхронизации профиля: %w", err)
	}
	return nil
}

// Transactor выполняет смену предмета в транзакции PostgreSQL.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor создаёт транзактор поверх пула.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// InTx выполняет fn с репозиторием на одной транзакции.
func (t *Transactor) InTx(ctx context.Context, fn func(EquipStore) error) error {
	return postgres.WithTx(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(NewRepository(tx))
	})
}
