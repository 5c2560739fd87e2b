package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	open  int
	stale int
}

func (f *fakeSweeper) Sweep() int {
	n := f.stale
	f.open -= n
	f.stale = 0
	return n
}

func (f *fakeSweeper) Count() int { return f.open }

func TestSessionSweepJob_Run(t *testing.T) {
	sweeper := &fakeSweeper{open: 3, stale: 2}
	job := jobs.NewSessionSweepJob(sweeper, zap.NewNop())

	assert.Equal(t, 2, job.Run())
	assert.Equal(t, 0, job.Run())
	assert.Equal(t, 1, sweeper.Count())
}

func TestSessionSweepJob_Register(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	job := jobs.NewSessionSweepJob(&fakeSweeper{}, zap.NewNop())

	require.NoError(t, job.Register(s, "*/5 * * * *"))
	assert.Equal(t, []string{jobs.SessionSweepJobName}, s.JobNames())
}

type windowSource struct {
	from, to time.Time
	events   []domain.CalendarEvent
}

func (w *windowSource) MilestonesDueBetween(_ context.Context, from, to time.Time) []domain.CalendarEvent {
	w.from, w.to = from, to
	return w.events
}

type feed struct {
	items []domain.Notification
}

func (f *feed) Publish(n domain.Notification) { f.items = append(f.items, n) }

func TestMilestoneReminderJob_Run(t *testing.T) {
	now := time.Date(2023, 6, 25, 8, 0, 0, 0, time.UTC)
	source := &windowSource{events: []domain.CalendarEvent{{
		Date:        time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		Title:       "Milestone: Frontend Development",
		Description: "E-commerce Platform Development - Develop the user interface",
		Type:        domain.CalendarEventMilestone,
		RefID:       "contract1",
	}}}
	sink := &feed{}

	job := jobs.NewMilestoneReminderJob(source, sink, 7*24*time.Hour, func() time.Time { return now }, zap.NewNop())
	assert.Equal(t, 1, job.Run(context.Background()))

	assert.Equal(t, now, source.from)
	assert.Equal(t, now.Add(7*24*time.Hour), source.to)

	require.Len(t, sink.items, 1)
	n := sink.items[0]
	assert.Equal(t, "Milestone due Jun 30, 2023", n.Title)
	assert.Contains(t, n.Description, "Frontend Development")
	assert.Equal(t, domain.KindContract, n.Kind)
	assert.Equal(t, domain.OpReminder, n.Op)
}

func TestMilestoneReminderJob_NothingDue(t *testing.T) {
	sink := &feed{}
	job := jobs.NewMilestoneReminderJob(&windowSource{}, sink, time.Hour, nil, zap.NewNop())

	assert.Equal(t, 0, job.Run(context.Background()))
	assert.Empty(t, sink.items)
}
