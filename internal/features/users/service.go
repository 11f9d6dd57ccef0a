// Package users — service.go содержит бизнес-логику аккаунтов:
// регистрацию, вход, ротацию refresh-токенов и редактирование профиля.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/auth"
	"serotonyl.ru/habit-casino/internal/common"
)

// Ограничения на поля аккаунта.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
)

// Store — то, что сервису нужно от хранилища пользователей.
// *Repository реализует его поверх PostgreSQL.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error)
	SetRefreshToken(ctx context.Context, id int64, token *string) error
	ClearRefreshTokenIfMatches(ctx context.Context, id int64, token string) error
	TouchLogin(ctx context.Context, id int64, at time.Time, token string) error
}

// Session — результат регистрации или входа.
type Session struct {
	User   *User     `json:"user"`
	Tokens auth.Pair `json:"tokens"`
}

// Invalidator сбрасывает закэшированные рейтинги, в которых видно имя пользователя.
type Invalidator interface {
	InvalidateLeaderboard(ctx context.Context) error
}

// Service управляет аккаунтами.
type Service struct {
	store  Store
	tokens *auth.TokenManager
	cache  Invalidator
	now    func() time.Time
}

// Option настраивает сервис пользователей.
type Option func(*Service)

// WithInvalidator сбрасывает кэш рейтинга после смены имени.
func WithInvalidator(c Invalidator) Option {
	return func(s *Service) { s.cache = c }
}

// NewService создаёт сервис пользователей.
func NewService(store Store, tokens *auth.TokenManager, opts ...Option) *Service {
	s := &Service{store: store, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register создаёт аккаунт и сразу открывает сессию.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: некорректный email", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: пароль должен быть не короче %d символов", common.ErrInvalidInput, MinPasswordLen)
	}

	// Предварительная проверка даёт понятную ошибку;
	// гонку двух регистраций всё равно ловит UNIQUE-индекс в репозитории.
	if err := s.ensureFree(ctx, email, username); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		CurrentTheme: DefaultTheme,
		LastLogin:    &now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	session, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  u.ID,
		"username": u.Username,
	}).Info("Зарегистрирован новый пользователь")

	return session, nil
}

// Login проверяет пароль и выпускает новую пару токенов.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		log.WithField("user_id", u.ID).Warn("Неудачная попытка входа")
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.TouchLogin(ctx, u.ID, now, pair.RefreshToken); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	u.RefreshToken = &pair.RefreshToken

	return &Session{User: u.WithoutCredentials(), Tokens: pair}, nil
}

// Refresh меняет действующий refresh-токен на новую пару.
// Токен должен совпадать с сохранённым у пользователя, иначе он считается отозванным.
// Истёкший токен стирается у владельца, если всё ещё там хранится.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.Pair, error) {
	if refreshToken == "" {
		return auth.Pair{}, common.ErrInvalidRefreshToken
	}

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) && claims != nil {
			if cerr := s.store.ClearRefreshTokenIfMatches(ctx, claims.UserID, refreshToken); cerr != nil {
				log.WithError(cerr).WithField("user_id", claims.UserID).Warn("Не удалось очистить истёкший refresh-токен")
			}
		}
		log.WithError(err).Debug("Refresh-токен отклонён")
		return auth.Pair{}, common.ErrInvalidRefreshToken
	}

	u, err := s.store.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return auth.Pair{}, common.ErrInvalidRefreshToken
		}
		return auth.Pair{}, err
	}
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return auth.Pair{}, common.ErrInvalidRefreshToken
	}

	pair, err := s.tokens.Issue(u.ID)
	if err != nil {
		return auth.Pair{}, err
	}
	if err := s.store.SetRefreshToken(ctx, u.ID, &pair.RefreshToken); err != nil {
		return auth.Pair{}, err
	}
	return pair, nil
}

// Logout отзывает refresh-токен пользователя.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.store.SetRefreshToken(ctx, userID, nil)
}

// Profile возвращает профиль без секретов.
func (s *Service) Profile(ctx context.Context, userID int64) (*User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.WithoutCredentials(), nil
}

// UpdateProfile применяет частичное обновление профиля.
// Пишутся только имя и чат; пустое имя означает «не менять».
func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*User, error) {
	renamed := false
	if upd.Username != nil {
		name := strings.TrimSpace(*upd.Username)
		if name == "" {
			upd.Username = nil
		} else {
			if err := validateUsername(name); err != nil {
				return nil, err
			}
			// Предварительная проверка даёт понятную ошибку; гонку ловит UNIQUE-индекс.
			other, err := s.store.GetByUsername(ctx, name)
			switch {
			case err == nil && other.ID != userID:
				return nil, common.ErrUsernameTaken
			case err != nil && !errors.Is(err, common.ErrUserNotFound):
				return nil, err
			}
			upd.Username = &name
			renamed = err != nil || other.Username != name
		}
	}

	u, err := s.store.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	if renamed && s.cache != nil {
		if err := s.cache.InvalidateLeaderboard(ctx); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Не удалось сбросить кэш лидерборда")
		}
	}
	return u.WithoutCredentials(), nil
}

func (s *Service) openSession(ctx context.Context, u *User) (*Session, error) {
	pair, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetRefreshToken(ctx, u.ID, &pair.RefreshToken); err != nil {
		return nil, err
	}
	u.RefreshToken = &pair.RefreshToken
	return &Session{User: u.WithoutCredentials(), Tokens: pair}, nil
}

func (s *Service) ensureFree(ctx context.Context, email, username string) error {
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return err
	}
	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return err
	}
	return nil
}

func validateUsername(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinUsernameLen || n > MaxUsernameLen {
		return fmt.Errorf("%w: имя пользователя должно быть от %d до %d символов",
			common.ErrInvalidInput, MinUsernameLen, MaxUsernameLen)
	}
	return nil
}
