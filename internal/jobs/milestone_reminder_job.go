package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
	"go.uber.org/zap"
)

// MilestoneReminderJobName is the name of the upcoming milestone reminder job
const MilestoneReminderJobName = "milestone_reminder"

// MilestoneSource lists open milestones due in a time window
type MilestoneSource interface {
	MilestonesDueBetween(ctx context.Context, from, to time.Time) []domain.CalendarEvent
}

// NotificationSink receives the reminders
type NotificationSink interface {
	Publish(n domain.Notification)
}

// MilestoneReminderJob posts a notification for every open milestone due
// within the configured window.
type MilestoneReminderJob struct {
	source  MilestoneSource
	sink    NotificationSink
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewMilestoneReminderJob creates the reminder job. now may be nil.
func NewMilestoneReminderJob(source MilestoneSource, sink NotificationSink, window time.Duration, now func() time.Time, logger *zap.Logger) *MilestoneReminderJob {
	if now == nil {
		now = time.Now
	}
	return &MilestoneReminderJob{
		source:  source,
		sink:    sink,
		window:  window,
		timeout: 30 * time.Second,
		now:     now,
		logger:  logger,
	}
}

// Run publishes the reminders and returns how many were sent
func (j *MilestoneReminderJob) Run(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	from := j.now()
	due := j.source.MilestonesDueBetween(ctx, from, from.Add(j.window))
	for _, event := range due {
		j.sink.Publish(domain.Notification{
			Title:       "Milestone due " + event.Date.Format("Jan 2, 2006"),
			Description: fmt.Sprintf("%s (%s)", event.Title, event.Description),
			Kind:        domain.KindContract,
			Op:          domain.OpReminder,
			At:          from,
		})
	}

	j.logger.Info("milestone reminders sent",
		zap.Int("count", len(due)),
		zap.Duration("window", j.window))
	return len(due)
}

// Register adds the job to the scheduler
func (j *MilestoneReminderJob) Register(s *Scheduler, cronExpr string) error {
	return s.AddJob(MilestoneReminderJobName, cronExpr, func() { j.Run(context.Background()) })
}
