package habits

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/habit-casino/internal/common"
)

type memStore struct {
	nextID  int64
	habits  map[int64]*Habit
	history map[int64][]Completion

	afterGet func() // вызывается после каждого Get, имитирует параллельную запись
}

func newMemStore() *memStore {
	return &memStore{habits: map[int64]*Habit{}, history: map[int64][]Completion{}}
}

func (m *memStore) Create(_ context.Context, h *Habit) error {
	h.Normalize()
	m.nextID++
	h.ID = m.nextID
	h.IsActive = true
	h.CreatedAt = time.Unix(m.nextID, 0)
	c := *h
	m.habits[h.ID] = &c
	return nil
}

func (m *memStore) Get(_ context.Context, id, userID int64) (*Habit, error) {
	h, ok := m.habits[id]
	if !ok || h.UserID != userID {
		return nil, common.ErrHabitNotFound
	}
	c := *h
	if m.afterGet != nil {
		m.afterGet()
	}
	return &c, nil
}

func (m *memStore) ListActive(_ context.Context, userID int64) ([]*Habit, error) {
	var list []*Habit
	for _, h := range m.habits {
		if h.UserID == userID && h.IsActive {
			c := *h
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *memStore) UpdateDetails(_ context.Context, id, userID int64, name, icon, description string) (*Habit, error) {
	h, ok := m.habits[id]
	if !ok || h.UserID != userID || !h.IsActive {
		return nil, common.ErrHabitNotFound
	}
	h.Name, h.Icon, h.Description = name, icon, description
	h.Normalize()
	c := *h
	return &c, nil
}

func (m *memStore) Deactivate(_ context.Context, id, userID int64) error {
	h, ok := m.habits[id]
	if !ok || h.UserID != userID || !h.IsActive {
		return common.ErrHabitNotFound
	}
	h.IsActive = false
	return nil
}

func (m *memStore) History(_ context.Context, habitID int64, limit, offset int) ([]Completion, int, error) {
	all := append([]Completion(nil), m.history[habitID]...)
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if offset >= len(all) {
		return []Completion{}, len(m.history[habitID]), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func TestCreateValidatesAndDefaults(t *testing.T) {
	svc := NewService(newMemStore(), time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "   ", "", "")
	assert.ErrorIs(t, err, common.ErrHabitNameRequired)

	_, err = svc.Create(ctx, 1, strings.Repeat("a", MaxNameLen+1), "", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Create(ctx, 1, "Read", "", strings.Repeat("d", MaxDescriptionLen+1))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	h, err := svc.Create(ctx, 1, "  Read  ", "", " daily ")
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, "daily", h.Description)
	assert.Equal(t, DefaultIcon, h.Icon)
	assert.Zero(t, h.Streak)
	assert.True(t, h.IsActive)
}

func TestUpdateAndSoftDelete(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, time.UTC)
	ctx := context.Background()

	h, err := svc.Create(ctx, 1, "Read", "📚", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, h.ID, HabitUpdate{})
	assert.ErrorIs(t, err, common.ErrHabitNotFound)

	empty := ""
	_, err = svc.Update(ctx, 1, h.ID, HabitUpdate{Name: &empty})
	assert.ErrorIs(t, err, common.ErrHabitNameRequired)

	name := "Read 20 pages"
	updated, err := svc.Update(ctx, 1, h.ID, HabitUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Read 20 pages", updated.Name)
	assert.Equal(t, "📚", updated.Icon)

	require.NoError(t, svc.Delete(ctx, 1, h.ID))
	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	// удалённая привычка остаётся в хранилище
	stored, err := store.Get(ctx, h.ID, 1)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestEditsDoNotOverwriteConcurrentCompletion(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, time.UTC)
	ctx := context.Background()

	h, err := svc.Create(ctx, 1, "Read", "📚", "")
	require.NoError(t, err)

	done := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	store.afterGet = func() {
		// выполнение фиксируется между чтением и записью правки
		stored := store.habits[h.ID]
		stored.SetStreak(1)
		stored.TotalCompletions = 1
		stored.LastCompleted = &done
		store.afterGet = nil
	}

	name := "Read 20 pages"
	updated, err := svc.Update(ctx, 1, h.ID, HabitUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Read 20 pages", updated.Name)
	assert.Equal(t, 1, updated.Streak)
	assert.Equal(t, 1, updated.TotalCompletions)
	require.NotNil(t, updated.LastCompleted)
	assert.Equal(t, done, *updated.LastCompleted)

	require.NoError(t, svc.Delete(ctx, 1, h.ID))
	stored := store.habits[h.ID]
	assert.False(t, stored.IsActive)
	assert.Equal(t, 1, stored.Streak)
	assert.Equal(t, 1, stored.BestStreak)
	assert.Equal(t, 1, stored.TotalCompletions)
	assert.NotNil(t, stored.LastCompleted)

	// удалённую привычку нельзя ни править, ни удалить повторно
	_, err = svc.Update(ctx, 1, h.ID, HabitUpdate{Name: &name})
	assert.ErrorIs(t, err, common.ErrHabitNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, h.ID), common.ErrHabitNotFound)
}

func TestHistoryPagination(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, time.UTC)
	ctx := context.Background()

	h, err := svc.Create(ctx, 1, "Run", "", "")
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		store.history[h.ID] = append(store.history[h.ID], Completion{
			HabitID:    h.ID,
			Date:       base.AddDate(0, 0, i),
			RewardKind: "xp",
		})
	}

	page, err := svc.History(ctx, 1, h.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 5, Pages: 3}, page.Pagination)
	require.Len(t, page.History, 2)
	assert.Equal(t, base.AddDate(0, 0, 4), page.History[0].Date)

	page, err = svc.History(ctx, 1, h.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page.History, 1)
	assert.Equal(t, base, page.History[0].Date)

	page, err = svc.History(ctx, 1, h.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, DefaultHistoryLimit, page.Pagination.Limit)

	_, err = svc.History(ctx, 2, h.ID, 1, 10)
	assert.ErrorIs(t, err, common.ErrHabitNotFound)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)

	st := Summarize([]*Habit{
		{Streak: 4, BestStreak: 9, TotalCompletions: 20, LastCompleted: &today},
		{Streak: 0, BestStreak: 3, TotalCompletions: 5, LastCompleted: &yesterday},
		{Streak: 2, BestStreak: 2, TotalCompletions: 2},
	}, now, time.UTC)

	assert.Equal(t, 3, st.TotalHabits)
	assert.Equal(t, 27, st.TotalCompletions)
	assert.InDelta(t, 2.0, st.AverageStreak, 1e-9)
	assert.Equal(t, 9, st.BestStreak)
	assert.Equal(t, 2, st.ActiveStreaks)
	assert.Equal(t, 1, st.HabitsCompletedToday)

	empty := Summarize(nil, now, time.UTC)
	assert.Zero(t, empty.AverageStreak)
}

func TestSetStreakKeepsBest(t *testing.T) {
	h := &Habit{Streak: 5, BestStreak: 5}
	h.SetStreak(6)
	assert.Equal(t, 6, h.BestStreak)
	h.SetStreak(1)
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 6, h.BestStreak)

	h = &Habit{Streak: 3, BestStreak: 1}
	h.Normalize()
	assert.Equal(t, 3, h.BestStreak)
}
