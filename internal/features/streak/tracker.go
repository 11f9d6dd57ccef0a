// Package streak ведёт серии выполнений привычек: решает, можно ли выполнить
// привычку сегодня, продлевает или обрывает серию, гасит брошенные серии
// и напоминает о длинных сериях.
// tracker.go содержит календарную логику серии.
package streak

import (
	"time"

	"serotonyl.ru/habit-casino/internal/common"
	"serotonyl.ru/habit-casino/internal/features/habits"
)

// Tracker считает календарные дни в одной фиксированной зоне.
type Tracker struct {
	loc *time.Location
}

// NewTracker создаёт трекер. nil означает UTC.
func NewTracker(loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{loc: loc}
}

// Location возвращает зону календарных дней.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// CanComplete сообщает, можно ли выполнить привычку в момент now:
// либо она ни разу не выполнялась, либо последнее выполнение было в другой день.
func (t *Tracker) CanComplete(h *habits.Habit, now time.Time) bool {
	if h.LastCompleted == nil {
		return true
	}
	return !common.SameDay(*h.LastCompleted, now, t.loc)
}

// Advance продлевает серию выполнением в момент now и возвращает новую серию.
//
//	первое выполнение         → 1
//	последнее было вчера      → серия + 1
//	последнее было сегодня    → серия без изменений, привычка не меняется
//	разрыв от 2 дней или дата из будущего → 1
//
// Кроме случая «сегодня» ставит last_completed = now и увеличивает total_completions.
func (t *Tracker) Advance(h *habits.Habit, now time.Time) int {
	switch {
	case h.LastCompleted == nil:
		h.SetStreak(1)
	case common.SameDay(*h.LastCompleted, now, t.loc):
		return h.Streak
	case common.DateIn(*h.LastCompleted, t.loc).Equal(common.Yesterday(now, t.loc)):
		h.SetStreak(h.Streak + 1)
	default:
		h.SetStreak(1)
	}

	at := now
	h.LastCompleted = &at
	h.TotalCompletions++
	return h.Streak
}
