// Package completion — orchestrator.go проводит выполнение привычки от начала до конца.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/rewards"
	"serotonyl.ru/habit-casino/internal/features/streak"
)

// Orchestrator выполняет привычки.
//
// Одновременно по одной привычке идёт не больше одного выполнения:
// в процессе это KeyedMutex по ID привычки, в базе — SELECT ... FOR UPDATE.
// CanComplete проверяется только после захвата обеих блокировок.
// Разные привычки выполняются параллельно. Повторов внутри нет.
type Orchestrator struct {
	tx        TxRunner
	tracker   *streak.Tracker
	generator *rewards.Generator
	locks     *KeyedMutex
	recorder  Recorder
	cache     Invalidator
	now       func() time.Time
}

// Option настраивает оркестратор.
type Option func(*Orchestrator)

// WithRecorder подключает метрики.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithInvalidator подключает сброс кэша лидерборда после успешного выполнения.
func WithInvalidator(c Invalidator) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// WithClock подменяет часы.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator создаёт оркестратор.
func NewOrchestrator(tx TxRunner, tracker *streak.Tracker, generator *rewards.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tx:        tx,
		tracker:   tracker,
		generator: generator,
		locks:     NewKeyedMutex(),
		recorder:  nopRecorder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Complete выполняет привычку habitID пользователя userID.
//
// Ошибки:
//   - common.ErrHabitNotFound / common.ErrUserNotFound — нечего выполнять;
//   - common.ErrAlreadyCompleted — привычка уже выполнена сегодня, ничего не изменено;
//   - любая другая — сбой хранилища, транзакция откатана.
func (o *Orchestrator) Complete(ctx context.Context, userID, habitID int64) (*Result, error) {
	unlock := o.locks.Lock(habitID)
	defer unlock()

	now := o.now()
	var res *Result

	err := o.tx.InTx(ctx, func(uow UnitOfWork) error {
		h, err := uow.Habits().GetActiveForUpdate(ctx, habitID, userID)
		if err != nil {
			return err
		}
		u, err := uow.Users().GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if !o.tracker.CanComplete(h, now) {
			return common.ErrAlreadyCompleted
		}

		newStreak := o.tracker.Advance(h, now)
		reward := o.generator.Generate(newStreak)

		item, err := rewards.Apply(ctx, uow.Loot(), u, h, reward, now)
		if err != nil {
			return err
		}

		if err := uow.Habits().AppendCompletion(ctx, &habits.Completion{
			HabitID:      h.ID,
			Date:         now,
			RewardKind:   string(reward.Kind),
			RewardAmount: reward.Amount,
			RewardItem:   reward.ItemName(),
		}); err != nil {
			return err
		}
		if err := uow.Habits().Save(ctx, h); err != nil {
			return err
		}
		if err := uow.Users().Save(ctx, u); err != nil {
			return err
		}

		res = &Result{
			Habit:  h,
			Reward: reward,
			User:   u.WithoutCredentials(),
			Streak: newStreak,
			Item:   item,
		}
		return nil
	})

	logger := log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": habitID,
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrAlreadyCompleted):
		o.recorder.CompletionOutcome(OutcomeRejected)
		return nil, err
	case errors.Is(err, common.ErrHabitNotFound), errors.Is(err, common.ErrUserNotFound):
		o.recorder.CompletionOutcome(OutcomeNotFound)
		return nil, err
	default:
		o.recorder.CompletionOutcome(OutcomeFailed)
		logger.WithError(err).Error("Ошибка выполнения привычки, транзакция откатана")
		return nil, fmt.Errorf("ошибка выполнения привычки: %w", err)
	}

	o.recorder.CompletionOutcome(OutcomeSuccess)
	o.recorder.RewardGranted(string(res.Reward.Kind), string(res.Reward.Rarity))

	if o.cache != nil {
		if err := o.cache.InvalidateLeaderboard(ctx); err != nil {
			logger.WithError(err).Warn("Не удалось сбросить кэш лидерборда")
		}
	}

	logger.WithFields(log.Fields{
		"streak": res.Streak,
		"reward": res.Reward.Kind,
		"xp":     res.Reward.XP,
		"level":  res.User.Level,
	}).Info("Привычка выполнена")

	return res, nil
}
