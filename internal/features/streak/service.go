// Package streak — service.go содержит фоновые операции над сериями:
// ночной сброс брошенных серий и напоминания о длинных сериях.
package streak

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/features/habits"
)

// Store — операции хранилища привычек, нужные фоновым задачам.
type Store interface {
	ExpireStreaks(ctx context.Context, since time.Time) (int64, error)
	ReminderTargets(ctx context.Context, minStreak int, dayStart time.Time) ([]habits.ReminderTarget, error)
	MarkReminded(ctx context.Context, habitID int64, at time.Time) error
}

// Notifier доставляет текст пользователю в привязанный чат.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// Service выполняет фоновые операции над сериями.
type Service struct {
	store     Store
	notifier  Notifier
	tracker   *Tracker
	threshold int // Минимальная серия для напоминания
	now       func() time.Time
}

// NewService создаёт сервис серий.
func NewService(store Store, notifier Notifier, tracker *Tracker, threshold int) *Service {
	return &Service{
		store:     store,
		notifier:  notifier,
		tracker:   tracker,
		threshold: threshold,
		now:       time.Now,
	}
}

// DailyReset обнуляет серии привычек, которые не выполнялись ни вчера, ни сегодня.
// Запускается кроном в 00:00 зоны трекера. Рекорды не меняются.
func (s *Service) DailyReset(ctx context.Context) error {
	since := common.Yesterday(s.now(), s.tracker.Location())
	log.WithField("since", common.FormatDate(since, s.tracker.Location())).Info("Запуск сброса брошенных серий")

	broken, err := s.store.ExpireStreaks(ctx, since)
	if err != nil {
		return fmt.Errorf("ошибка сброса серий: %w", err)
	}

	log.WithField("broken", broken).Info("Сброс брошенных серий завершён")
	return nil
}

// SendReminders напоминает о привычках с длинной серией, которые ещё не выполнены сегодня.
// По каждой привычке напоминание уходит не чаще раза в день.
// Запускается кроном каждый час.
func (s *Service) SendReminders(ctx context.Context) error {
	now := s.now()
	dayStart := common.DateIn(now, s.tracker.Location())

	targets, err := s.store.ReminderTargets(ctx, s.threshold, dayStart)
	if err != nil {
		return err
	}

	sent := 0
	for _, t := range targets {
		if err := s.notifier.Notify(ctx, t.ChatID, ReminderText(t)); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id":  t.UserID,
				"habit_id": t.HabitID,
			}).Warn("Не удалось отправить напоминание")
			continue
		}
		if err := s.store.MarkReminded(ctx, t.HabitID, now); err != nil {
			log.WithError(err).WithField("habit_id", t.HabitID).Error("Ошибка отметки напоминания")
			continue
		}
		sent++
	}

	if sent > 0 {
		log.WithFields(log.Fields{
			"candidates": len(targets),
			"sent":       sent,
		}).Info("Напоминания о сериях отправлены")
	}
	return nil
}

// ReminderText формирует текст напоминания.
func ReminderText(t habits.ReminderTarget) string {
	return fmt.Sprintf("⚠️ %s %s: серия %s! Выполни привычку сегодня, чтобы не потерять прогресс.",
		t.Icon, t.Name, common.FormatStreak(t.Streak))
}
