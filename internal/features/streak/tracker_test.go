package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"serotonyl.ru/habit-casino/internal/features/habits"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func completedAt(t time.Time, streak, best int) *habits.Habit {
	return &habits.Habit{Streak: streak, BestStreak: best, LastCompleted: &t, TotalCompletions: best, IsActive: true}
}

func TestFirstCompletion(t *testing.T) {
	tr := NewTracker(time.UTC)
	h := &habits.Habit{IsActive: true}
	now := at(2024, 1, 10, 9)

	assert.True(t, tr.CanComplete(h, now))
	assert.Equal(t, 1, tr.Advance(h, now))
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 1, h.BestStreak)
	assert.Equal(t, 1, h.TotalCompletions)
	assert.Equal(t, now, *h.LastCompleted)

	// второй раз в тот же день нельзя
	assert.False(t, tr.CanComplete(h, at(2024, 1, 10, 23)))
}

func TestConsecutiveDayIncrements(t *testing.T) {
	tr := NewTracker(time.UTC)
	h := completedAt(at(2024, 1, 9, 22), 5, 5)

	now := at(2024, 1, 10, 0)
	assert.True(t, tr.CanComplete(h, now))
	assert.Equal(t, 6, tr.Advance(h, now))
	assert.Equal(t, 6, h.BestStreak)
	assert.Equal(t, 6, h.TotalCompletions)
}

func TestGapResetsStreak(t *testing.T) {
	tr := NewTracker(time.UTC)
	h := completedAt(at(2024, 1, 5, 12), 7, 7)

	assert.Equal(t, 1, tr.Advance(h, at(2024, 1, 10, 9)))
	assert.Equal(t, 7, h.BestStreak)
	assert.Equal(t, 8, h.TotalCompletions)

	// ровно два дня назад — тоже разрыв
	h = completedAt(at(2024, 1, 8, 23), 3, 3)
	assert.Equal(t, 1, tr.Advance(h, at(2024, 1, 10, 1)))
}

func TestSameDayAdvanceChangesNothing(t *testing.T) {
	tr := NewTracker(time.UTC)
	last := at(2024, 1, 10, 8)
	h := completedAt(last, 4, 6)

	assert.Equal(t, 4, tr.Advance(h, at(2024, 1, 10, 20)))
	assert.Equal(t, 4, h.Streak)
	assert.Equal(t, 6, h.TotalCompletions)
	assert.Equal(t, last, *h.LastCompleted)
}

func TestFutureLastCompletedIsTreatedAsGap(t *testing.T) {
	tr := NewTracker(time.UTC)
	h := completedAt(at(2024, 1, 12, 8), 4, 4)

	assert.True(t, tr.CanComplete(h, at(2024, 1, 10, 9)))
	assert.Equal(t, 1, tr.Advance(h, at(2024, 1, 10, 9)))
}

func TestBestStreakNeverBelowStreak(t *testing.T) {
	tr := NewTracker(time.UTC)
	h := &habits.Habit{IsActive: true}
	day := at(2024, 1, 1, 12)

	// серия из 5 дней, разрыв, серия из 3 дней
	for _, offset := range []int{0, 1, 2, 3, 4, 7, 8, 9} {
		tr.Advance(h, day.AddDate(0, 0, offset))
		assert.GreaterOrEqual(t, h.BestStreak, h.Streak)
	}
	assert.Equal(t, 3, h.Streak)
	assert.Equal(t, 5, h.BestStreak)
	assert.Equal(t, 8, h.TotalCompletions)
}

func TestCalendarDaysFollowConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	tr := NewTracker(loc)

	// 22:00 UTC 9 января = 01:00 10 января по UTC+3
	h := completedAt(time.Date(2024, 1, 9, 22, 0, 0, 0, time.UTC), 2, 2)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	assert.False(t, tr.CanComplete(h, now))
	assert.True(t, NewTracker(time.UTC).CanComplete(h, now))
}

func TestNilLocationMeansUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewTracker(nil).Location())
}
