// Package leaderboard — service.go собирает рейтинг и кэширует его в Redis.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"serotonyl.ru/habit-casino/internal/common"
)

// KeyPrefix — префикс всех ключей рейтинга в кэше.
const KeyPrefix = "leaderboard:"

// Store — запросы рейтинга.
type Store interface {
	TopByXP(ctx context.Context, limit int) ([]Entry, error)
	TopWeekly(ctx context.Context, since time.Time, limit int) ([]Entry, error)
	Position(ctx context.Context, userID int64) (*Entry, error)
	Totals(ctx context.Context) (*Totals, error)
}

// Cache — JSON-кэш. *cache.Cache реализует его; nil-кэш всегда промахивается.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, v any)
	InvalidateByPrefix(ctx context.Context, prefix string) error
}

// Service строит рейтинги.
type Service struct {
	store Store
	cache Cache
	now   func() time.Time
}

// NewService создаёт сервис рейтинга. cache может быть nil.
func NewService(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache, now: time.Now}
}

// ParseTimeframe проверяет период. Пустая строка — за всё время.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "", AllTime:
		return AllTime, nil
	case Weekly:
		return Weekly, nil
	}
	return "", fmt.Errorf("%w: неизвестный период %q", common.ErrInvalidInput, s)
}

// ClampLimit приводит размер рейтинга к [1, MaxLimit].
func ClampLimit(limit int) int {
	switch {
	case limit < 1:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Board возвращает рейтинг и позицию пользователя userID.
// Для рейтинга за всё время пользователь вне списка получает своё место отдельно.
func (s *Service) Board(ctx context.Context, userID int64, tf Timeframe, limit int) (*Board, error) {
	limit = ClampLimit(limit)

	key := fmt.Sprintf("%s%s:%d", KeyPrefix, tf, limit)
	var entries []Entry
	if !s.cacheGet(ctx, key, &entries) {
		var err error
		switch tf {
		case Weekly:
			entries, err = s.store.TopWeekly(ctx, s.now().AddDate(0, 0, -7), limit)
		default:
			entries, err = s.store.TopByXP(ctx, limit)
		}
		if err != nil {
			return nil, err
		}
		s.cacheSet(ctx, key, entries)
	}

	board := &Board{
		Leaderboard: Rank(entries, userID),
		Timeframe:   tf,
		Limit:       limit,
	}
	for i := range board.Leaderboard {
		if board.Leaderboard[i].IsCurrentUser {
			board.CurrentUser = &board.Leaderboard[i]
		}
	}
	if board.CurrentUser == nil && tf == AllTime {
		pos, err := s.store.Position(ctx, userID)
		if err != nil {
			return nil, err
		}
		pos.IsCurrentUser = true
		board.CurrentUser = pos
	}
	return board, nil
}

// Stats возвращает общую сводку и место пользователя по опыту.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	key := KeyPrefix + "stats"
	var totals Totals
	if !s.cacheGet(ctx, key, &totals) {
		t, err := s.store.Totals(ctx)
		if err != nil {
			return nil, err
		}
		totals = *t
		s.cacheSet(ctx, key, totals)
	}

	pos, err := s.store.Position(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Stats{Totals: totals, CurrentUserRank: pos.Rank}, nil
}

// InvalidateLeaderboard сбрасывает все закэшированные рейтинги.
func (s *Service) InvalidateLeaderboard(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateByPrefix(ctx, KeyPrefix)
}

func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	return s.cache != nil && s.cache.GetJSON(ctx, key, dst)
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache != nil {
		s.cache.SetJSON(ctx, key, v)
	}
}

// Rank проставляет места 1..n и отмечает строку пользователя userID.
// Исходный срез не меняется.
func Rank(entries []Entry, userID int64) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Rank = i + 1
		e.IsCurrentUser = e.UserID == userID
		out[i] = e
	}
	return out
}
