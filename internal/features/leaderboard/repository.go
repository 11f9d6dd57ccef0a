// Package leaderboard — repository.go читает рейтинги из таблиц users и habit_completions.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/db/postgres"
)

// Repository выполняет запросы рейтинга.
type Repository struct {
	db postgres.DBTX
}

// NewRepository создаёт репозиторий рейтинга.
func NewRepository(db postgres.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) queryEntries(ctx context.Context, weekly bool, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рейтинга: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		dest := []any{&e.UserID, &e.Username, &e.XP, &e.Level, &e.TotalHabitsCompleted, &e.CurrentBadge}
		var weeklyCount int
		if weekly {
			dest = append(dest, &weeklyCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ошибка чтения рейтинга: %w", err)
		}
		if weekly {
			n := weeklyCount
			e.WeeklyCompletions = &n
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TopByXP возвращает limit пользователей с наибольшим опытом.
func (r *Repository) TopByXP(ctx context.Context, limit int) ([]Entry, error) {
	return r.queryEntries(ctx, false, `
		SELECT id, username, xp, level, total_habits_completed, current_badge
		FROM users
		ORDER BY xp DESC, id
		LIMIT $1`, limit)
}

// TopWeekly возвращает limit пользователей по числу выполнений активных привычек с момента since.
func (r *Repository) TopWeekly(ctx context.Context, since time.Time, limit int) ([]Entry, error) {
	return r.queryEntries(ctx, true, `
		SELECT u.id, u.username, u.xp, u.level, u.total_habits_completed, u.current_badge,
		       COUNT(c.id) AS weekly_completions
		FROM users u
		LEFT JOIN habits h ON h.user_id = u.id AND h.is_active = TRUE
		LEFT JOIN habit_completions c ON c.habit_id = h.id AND c.completed_at >= $1
		GROUP BY u.id
		ORDER BY weekly_completions DESC, u.xp DESC, u.id
		LIMIT $2`, since, limit)
}

// Position возвращает строку пользователя с его местом по опыту.
func (r *Repository) Position(ctx context.Context, userID int64) (*Entry, error) {
	var e Entry
	err := r.db.QueryRow(ctx, `
		SELECT u.id, u.username, u.xp, u.level, u.total_habits_completed, u.current_badge,
		       (SELECT COUNT(*) FROM users o WHERE o.xp > u.xp) + 1
		FROM users u
		WHERE u.id = $1`, userID,
	).Scan(&e.UserID, &e.Username, &e.XP, &e.Level, &e.TotalHabitsCompleted, &e.CurrentBadge, &e.Rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения места пользователя: %w", err)
	}
	return &e, nil
}

// Totals считает агрегаты по всем пользователям.
func (r *Repository) Totals(ctx context.Context) (*Totals, error) {
	var (
		t   Totals
		avg float64
	)
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_habits_completed), 0), COALESCE(AVG(xp), 0)::float8
		FROM users`,
	).Scan(&t.TotalUsers, &t.TotalHabitsCompleted, &avg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта статистики: %w", err)
	}
	t.AverageXP = int(math.Round(avg))

	top, err := r.TopByXP(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		top[0].Rank = 1
		t.TopUser = &top[0]
	}
	return &t, nil
}
