package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJobs struct {
	resets    int
	reminders int
	err       error
}

func (c *countingJobs) DailyReset(context.Context) error {
	c.resets++
	return c.err
}

func (c *countingJobs) SendReminders(context.Context) error {
	c.reminders++
	return c.err
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewScheduler(&countingJobs{}, time.UTC, true)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Equal(t, 2, s.Entries())
}

func TestSchedulerWithoutReminders(t *testing.T) {
	s := NewScheduler(&countingJobs{}, nil, false)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Equal(t, 1, s.Entries())
	assert.Equal(t, time.UTC, s.loc)
}

func TestJobRunnersSwallowErrors(t *testing.T) {
	jobs := &countingJobs{err: errors.New("db down")}
	s := NewScheduler(jobs, time.UTC, true)

	s.runDailyReset(context.Background())
	s.runReminders(context.Background())

	assert.Equal(t, 1, jobs.resets)
	assert.Equal(t, 1, jobs.reminders)
}
