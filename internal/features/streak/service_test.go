package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/habit-casino/internal/features/habits"
)

type fakeStore struct {
	expireSince time.Time
	expired     int64
	targets     []habits.ReminderTarget
	dayStart    time.Time
	minStreak   int
	reminded    []int64
}

func (f *fakeStore) ExpireStreaks(_ context.Context, since time.Time) (int64, error) {
	f.expireSince = since
	return f.expired, nil
}

func (f *fakeStore) ReminderTargets(_ context.Context, minStreak int, dayStart time.Time) ([]habits.ReminderTarget, error) {
	f.minStreak = minStreak
	f.dayStart = dayStart
	return f.targets, nil
}

func (f *fakeStore) MarkReminded(_ context.Context, habitID int64, _ time.Time) error {
	f.reminded = append(f.reminded, habitID)
	return nil
}

type fakeNotifier struct {
	failFor map[int64]bool
	sent    map[int64]string
}

func (f *fakeNotifier) Notify(_ context.Context, chatID int64, text string) error {
	if f.failFor[chatID] {
		return errors.New("chat not found")
	}
	if f.sent == nil {
		f.sent = map[int64]string{}
	}
	f.sent[chatID] = text
	return nil
}

func TestDailyResetUsesStartOfYesterday(t *testing.T) {
	store := &fakeStore{expired: 3}
	svc := NewService(store, &fakeNotifier{}, NewTracker(time.UTC), 7)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 0, 0, 5, 0, time.UTC) }

	require.NoError(t, svc.DailyReset(context.Background()))
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), store.expireSince)
}

func TestSendRemindersMarksOnlyDelivered(t *testing.T) {
	store := &fakeStore{targets: []habits.ReminderTarget{
		{HabitID: 1, ChatID: 100, Name: "Read", Icon: "📚", Streak: 12},
		{HabitID: 2, ChatID: 200, Name: "Run", Icon: "🏃", Streak: 7},
	}}
	notifier := &fakeNotifier{failFor: map[int64]bool{200: true}}
	svc := NewService(store, notifier, NewTracker(time.UTC), 7)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC) }

	require.NoError(t, svc.SendReminders(context.Background()))

	assert.Equal(t, 7, store.minStreak)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), store.dayStart)
	assert.Equal(t, []int64{1}, store.reminded)
	assert.Contains(t, notifier.sent[100], "12 дней")
}

func TestReminderText(t *testing.T) {
	text := ReminderText(habits.ReminderTarget{Name: "Read", Icon: "📚", Streak: 21})
	assert.Contains(t, text, "📚 Read")
	assert.Contains(t, text, "21 день")
}
