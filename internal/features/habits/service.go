// Package habits — service.go содержит бизнес-логику привычек.
// Выполнение привычки (стрик + награда) живёт в пакете completion.
package habits

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
)

// Параметры пагинации истории.
const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 100
)

// Store — то, что сервису нужно от хранилища привычек.
type Store interface {
	Create(ctx context.Context, h *Habit) error
	Get(ctx context.Context, id, userID int64) (*Habit, error)
	ListActive(ctx context.Context, userID int64) ([]*Habit, error)
	UpdateDetails(ctx context.Context, id, userID int64, name, icon, description string) (*Habit, error)
	Deactivate(ctx context.Context, id, userID int64) error
	History(ctx context.Context, habitID int64, limit, offset int) ([]Completion, int, error)
}

// Service управляет привычками.
type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewService создаёт сервис привычек. loc — зона календарных дней.
func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

// List возвращает активные привычки, новые первыми.
func (s *Service) List(ctx context.Context, userID int64) ([]*Habit, error) {
	list, err := s.store.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*Habit{}
	}
	return list, nil
}

// Create создаёт привычку.
func (s *Service) Create(ctx context.Context, userID int64, name, icon, description string) (*Habit, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validate(name, description); err != nil {
		return nil, err
	}

	h := &Habit{
		UserID:      userID,
		Name:        name,
		Icon:        icon,
		Description: description,
		IsActive:    true,
	}
	if err := s.store.Create(ctx, h); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": h.ID,
	}).Debug("Привычка создана")
	return h, nil
}

// Update применяет частичное обновление имени, иконки и описания.
// Серия и счётчики пишутся отдельным запросом только при выполнении,
// поэтому правка не может затереть параллельное выполнение.
func (s *Service) Update(ctx context.Context, userID, habitID int64, upd HabitUpdate) (*Habit, error) {
	h, err := s.store.Get(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if !h.IsActive {
		return nil, common.ErrHabitNotFound
	}

	name, icon, description := h.Name, h.Icon, h.Description
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
	}
	if upd.Icon != nil {
		icon = *upd.Icon
	}
	if upd.Description != nil {
		description = strings.TrimSpace(*upd.Description)
	}
	if err := validate(name, description); err != nil {
		return nil, err
	}
	return s.store.UpdateDetails(ctx, habitID, userID, name, icon, description)
}

// Delete помечает привычку неактивной. История и предметы сохраняются.
func (s *Service) Delete(ctx context.Context, userID, habitID int64) error {
	return s.store.Deactivate(ctx, habitID, userID)
}

// History возвращает страницу истории выполнений, новые первыми.
func (s *Service) History(ctx context.Context, userID, habitID int64, page, limit int) (*HistoryPage, error) {
	h, err := s.store.Get(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	items, total, err := s.store.History(ctx, h.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &HistoryPage{
		Habit:   HabitRef{ID: h.ID, Name: h.Name, Icon: h.Icon},
		History: items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

// Stats считает сводку по активным привычкам.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	list, err := s.store.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Summarize(list, s.now(), s.loc), nil
}

// Summarize считает статистику по списку привычек на момент now.
func Summarize(list []*Habit, now time.Time, loc *time.Location) *Stats {
	st := &Stats{TotalHabits: len(list)}
	streakSum := 0
	for _, h := range list {
		st.TotalCompletions += h.TotalCompletions
		streakSum += h.Streak
		if h.BestStreak > st.BestStreak {
			st.BestStreak = h.BestStreak
		}
		if h.Streak > 0 {
			st.ActiveStreaks++
		}
		if h.LastCompleted != nil && common.SameDay(*h.LastCompleted, now, loc) {
			st.HabitsCompletedToday++
		}
	}
	if len(list) > 0 {
		st.AverageStreak = float64(streakSum) / float64(len(list))
	}
	return st
}

func validate(name, description string) error {
	if name == "" {
		return common.ErrHabitNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%w: имя привычки длиннее %d символов", common.ErrInvalidInput, MaxNameLen)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return fmt.Errorf("%w: описание длиннее %d символов", common.ErrInvalidInput, MaxDescriptionLen)
	}
	return nil
}
