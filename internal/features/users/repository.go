// Package users — repository.go выполняет операции с таблицей users.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/db/postgres"
)

// Repository предоставляет методы для работы с таблицей users.
// Работает как с пулом, так и с транзакцией (см. postgres.DBTX).
type Repository struct {
	db postgres.DBTX
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(db postgres.DBTX) *Repository {
	return &Repository{db: db}
}

const userColumns = `
	id, username, email, password_hash, xp, level, total_habits_completed,
	streak_protection_tokens, current_theme, current_badge, telegram_chat_id,
	last_login, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.XP, &u.Level,
		&u.TotalHabitsCompleted, &u.StreakProtectionTokens, &u.CurrentTheme,
		&u.CurrentBadge, &u.TelegramChatID, &u.LastLogin, &u.RefreshToken,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create добавляет нового пользователя. Заполняет ID и временные метки.
// Нарушение уникальности email/username переводится в доменные ошибки.
func (r *Repository) Create(ctx context.Context, u *User) error {
	u.Normalize()
	query := `
		INSERT INTO users (username, email, password_hash, xp, level, total_habits_completed,
		                   streak_protection_tokens, current_theme, current_badge, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.XP, u.Level, u.TotalHabitsCompleted,
		u.StreakProtectionTokens, u.CurrentTheme, u.CurrentBadge, u.LastLogin,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translateUniqueErr(err, "ошибка создания пользователя")
	}
	return nil
}

// GetByID возвращает пользователя по ID или common.ErrUserNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByIDForUpdate читает пользователя с блокировкой строки до конца транзакции.
// Имеет смысл только для репозитория, созданного на pgx.Tx.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// GetByEmail ищет пользователя по email (без учёта регистра).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

// GetByUsername ищет пользователя по имени (без учёта регистра).
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
	}
	return u, nil
}

// Save записывает все изменяемые поля пользователя.
// Перед записью восстанавливает производные поля (уровень).
func (r *Repository) Save(ctx context.Context, u *User) error {
	u.Normalize()
	query := `
		UPDATE users
		SET username = $2, xp = $3, level = $4, total_habits_completed = $5,
		    streak_protection_tokens = $6, current_theme = $7, current_badge = $8,
		    telegram_chat_id = $9, last_login = $10, refresh_token = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		u.ID, u.Username, u.XP, u.Level, u.TotalHabitsCompleted,
		u.StreakProtectionTokens, u.CurrentTheme, u.CurrentBadge,
		u.TelegramChatID, u.LastLogin, u.RefreshToken,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrUserNotFound
		}
		return translateUniqueErr(err, "ошибка сохранения пользователя")
	}
	return nil
}

// UpdateProfile меняет только имя и привязку чата одним запросом.
// Опыт, счётчики, слоты экипировки и токены не трогает.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2::VARCHAR, username),
		    telegram_chat_id = CASE
		        WHEN $3::BIGINT IS NULL THEN telegram_chat_id
		        WHEN $3::BIGINT = 0 THEN NULL
		        ELSE $3::BIGINT
		    END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, id, upd.Username, upd.TelegramChatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, translateUniqueErr(err, "ошибка обновления профиля")
	}
	return u, nil
}

// SetRefreshToken сохраняет (или очищает, если token == nil) refresh-токен.
func (r *Repository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`, id, token)
	if err != nil {
		return fmt.Errorf("ошибка обновления refresh-токена: %w", err)
	}
	return nil
}

// ClearRefreshTokenIfMatches очищает токен, только если он всё ещё сохранён у пользователя.
func (r *Repository) ClearRefreshTokenIfMatches(ctx context.Context, id int64, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1 AND refresh_token = $2`,
		id, token)
	if err != nil {
		return fmt.Errorf("ошибка очистки refresh-токена: %w", err)
	}
	return nil
}

// TouchLogin обновляет время последнего входа и refresh-токен.
func (r *Repository) TouchLogin(ctx context.Context, id int64, at time.Time, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = $2, refresh_token = $3, updated_at = NOW() WHERE id = $1`,
		id, at, token)
	if err != nil {
		return fmt.Errorf("ошибка обновления входа: %w", err)
	}
	return nil
}

func translateUniqueErr(err error, msg string) error {
	switch {
	case postgres.IsUniqueViolation(err, "users_email_key"):
		return common.ErrEmailTaken
	case postgres.IsUniqueViolation(err, "users_username_key"):
		return common.ErrUsernameTaken
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
