// Package habits — repository.go выполняет операции с таблицами habits и habit_completions.
package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/db/postgres"
)

// Repository предоставляет методы для работы с привычками.
type Repository struct {
	db postgres.DBTX
}

// NewRepository создаёт новый репозиторий привычек.
func NewRepository(db postgres.DBTX) *Repository {
	return &Repository{db: db}
}

const habitColumns = `
	id, user_id, name, icon, description, streak, best_streak, last_completed,
	total_completions, is_active, reminded_at, created_at, updated_at`

func scanHabit(row pgx.Row) (*Habit, error) {
	var h Habit
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Icon, &h.Description, &h.Streak, &h.BestStreak,
		&h.LastCompleted, &h.TotalCompletions, &h.IsActive, &h.RemindedAt,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create добавляет привычку.
func (r *Repository) Create(ctx context.Context, h *Habit) error {
	h.Normalize()
	query := `
		INSERT INTO habits (user_id, name, icon, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + habitColumns
	created, err := scanHabit(r.db.QueryRow(ctx, query, h.UserID, h.Name, h.Icon, h.Description))
	if err != nil {
		return fmt.Errorf("ошибка создания привычки: %w", err)
	}
	*h = *created
	return nil
}

// Get возвращает привычку владельца (в том числе удалённую).
func (r *Repository) Get(ctx context.Context, id, userID int64) (*Habit, error) {
	return r.getOne(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetActiveForUpdate читает активную привычку владельца и блокирует строку
// до конца транзакции. Повторное выполнение той же привычки ждёт здесь.
func (r *Repository) GetActiveForUpdate(ctx context.Context, id, userID int64) (*Habit, error) {
	return r.getOne(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		FOR UPDATE`, id, userID)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (*Habit, error) {
	h, err := scanHabit(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrHabitNotFound
		}
		return nil, fmt.Errorf("ошибка чтения привычки: %w", err)
	}
	return h, nil
}

// ListActive возвращает активные привычки пользователя, новые первыми.
func (r *Repository) ListActive(ctx context.Context, userID int64) ([]*Habit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения привычек: %w", err)
	}
	defer rows.Close()

	var list []*Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения привычки: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// Save записывает изменяемые поля привычки.
func (r *Repository) Save(ctx context.Context, h *Habit) error {
	h.Normalize()
	query := `
		UPDATE habits
		SET name = $3, icon = $4, description = $5, streak = $6, best_streak = $7,
		    last_completed = $8, total_completions = $9, is_active = $10, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		h.ID, h.UserID, h.Name, h.Icon, h.Description, h.Streak, h.BestStreak,
		h.LastCompleted, h.TotalCompletions, h.IsActive,
	).Scan(&h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrHabitNotFound
		}
		return fmt.Errorf("ошибка сохранения привычки: %w", err)
	}
	return nil
}

// UpdateDetails меняет только описательные поля активной привычки.
// Серия и счётчики не трогаются: их пишет только выполнение.
func (r *Repository) UpdateDetails(ctx context.Context, id, userID int64, name, icon, description string) (*Habit, error) {
	if icon == "" {
		icon = DefaultIcon
	}
	query := `
		UPDATE habits
		SET name = $3, icon = $4, description = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		RETURNING ` + habitColumns
	return r.getOne(ctx, query, id, userID, name, icon, description)
}

// Deactivate помечает привычку неактивной (мягкое удаление).
func (r *Repository) Deactivate(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE habits
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`, id, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления привычки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrHabitNotFound
	}
	return nil
}

// AppendCompletion дописывает запись в историю выполнений.
func (r *Repository) AppendCompletion(ctx context.Context, c *Completion) error {
	query := `
		INSERT INTO habit_completions (habit_id, completed_at, reward_kind, reward_amount, reward_item)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		c.HabitID, c.Date, c.RewardKind, c.RewardAmount, c.RewardItem,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("ошибка записи истории выполнения: %w", err)
	}
	return nil
}

// History возвращает страницу истории (новые первыми) и общее число записей.
func (r *Repository) History(ctx context.Context, habitID int64, limit, offset int) ([]Completion, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM habit_completions WHERE habit_id = $1`, habitID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта истории: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, habit_id, completed_at, reward_kind, reward_amount, reward_item
		FROM habit_completions
		WHERE habit_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT $2 OFFSET $3`, habitID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	history := make([]Completion, 0, limit)
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.RewardKind, &c.RewardAmount, &c.RewardItem); err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения истории: %w", err)
		}
		history = append(history, c)
	}
	return history, total, rows.Err()
}

// ExpireStreaks обнуляет серии активных привычек, последнее выполнение которых
// раньше since (начала вчерашнего дня). Рекорд не трогается.
func (r *Repository) ExpireStreaks(ctx context.Context, since time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE habits
		SET streak = 0, updated_at = NOW()
		WHERE is_active = TRUE AND streak > 0
		  AND (last_completed IS NULL OR last_completed < $1)`, since)
	if err != nil {
		return 0, fmt.Errorf("ошибка сброса серий: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReminderTargets находит привычки с серией не меньше minStreak, которые ещё не
// выполнены и о которых ещё не напоминали с начала дня dayStart.
// Учитываются только владельцы с привязанным Telegram.
func (r *Repository) ReminderTargets(ctx context.Context, minStreak int, dayStart time.Time) ([]ReminderTarget, error) {
	rows, err := r.db.Query(ctx, `
		SELECT h.id, h.user_id, u.telegram_chat_id, u.username, h.name, h.icon, h.streak
		FROM habits h
		JOIN users u ON u.id = h.user_id
		WHERE h.is_active = TRUE
		  AND h.streak >= $1
		  AND h.last_completed < $2
		  AND (h.reminded_at IS NULL OR h.reminded_at < $2)
		  AND u.telegram_chat_id IS NOT NULL
		ORDER BY h.streak DESC`, minStreak, dayStart)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска привычек для напоминаний: %w", err)
	}
	defer rows.Close()

	var targets []ReminderTarget
	for rows.Next() {
		var t ReminderTarget
		if err := rows.Scan(&t.HabitID, &t.UserID, &t.ChatID, &t.Username, &t.Name, &t.Icon, &t.Streak); err != nil {
			return nil, fmt.Errorf("ошибка чтения напоминания: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// MarkReminded отмечает, что напоминание по привычке отправлено.
func (r *Repository) MarkReminded(ctx context.Context, habitID int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE habits SET reminded_at = $2 WHERE id = $1`, habitID, at)
	if err != nil {
		return fmt.Errorf("ошибка отметки напоминания: %w", err)
	}
	return nil
}
