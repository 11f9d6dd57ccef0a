// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ночной сброс брошенных серий
// и ежечасные напоминания.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	// DailyResetSpec — каждый день в 00:00 зоны планировщика.
	DailyResetSpec = "0 0 * * *"
	// RemindersSpec — в начале каждого часа.
	RemindersSpec = "0 * * * *"
)

// StreakJobs — операции над сериями, которые запускает планировщик.
// Реализуется *streak.Service.
type StreakJobs interface {
	DailyReset(ctx context.Context) error
	SendReminders(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron      *cron.Cron
	streaks   StreakJobs
	reminders bool
	loc       *time.Location
}

// NewScheduler создаёт планировщик в часовом поясе loc.
// reminders=false отключает ежечасные напоминания.
func NewScheduler(streaks StreakJobs, loc *time.Location, reminders bool) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		streaks:   streaks,
		reminders: reminders,
		loc:       loc,
	}
}

// Start регистрирует задачи и запускает планировщик.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(DailyResetSpec, func() { s.runDailyReset(ctx) }); err != nil {
		return err
	}

	if s.reminders {
		if _, err := s.cron.AddFunc(RemindersSpec, func() { s.runReminders(ctx) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"timezone":  s.loc.String(),
		"reminders": s.reminders,
	}).Info("Планировщик задач запущен")
	return nil
}

// Entries возвращает число зарегистрированных задач.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Stop останавливает планировщик и ждёт завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) runDailyReset(ctx context.Context) {
	log.Info("[CRON] Ночной сброс серий")
	if err := s.streaks.DailyReset(ctx); err != nil {
		log.WithError(err).Error("[CRON] Ошибка сброса")
	}
}

func (s *Scheduler) runReminders(ctx context.Context) {
	log.Debug("[CRON] Проверка напоминаний")
	if err := s.streaks.SendReminders(ctx); err != nil {
		log.WithError(err).Error("[CRON] Ошибка напоминаний")
	}
}
