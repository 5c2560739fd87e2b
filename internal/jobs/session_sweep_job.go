package jobs

import (
	"go.uber.org/zap"
)

// SessionSweepJobName is the name of the idle session sweep job
const SessionSweepJobName = "session_sweep"

// SessionSweeper closes sessions that have been idle for too long
type SessionSweeper interface {
	Sweep() int
	Count() int
}

// SessionSweepJob drops idle sessions together with their drafts
type SessionSweepJob struct {
	sessions SessionSweeper
	logger   *zap.Logger
}

func NewSessionSweepJob(sessions SessionSweeper, logger *zap.Logger) *SessionSweepJob {
	return &SessionSweepJob{sessions: sessions, logger: logger}
}

// Run executes one sweep and returns the number of closed sessions
func (j *SessionSweepJob) Run() int {
	closed := j.sessions.Sweep()
	if closed > 0 {
		j.logger.Info("swept idle sessions",
			zap.Int("closed", closed),
			zap.Int("open", j.sessions.Count()))
	}
	return closed
}

// Register adds the job to the scheduler
func (j *SessionSweepJob) Register(s *Scheduler, cronExpr string) error {
	return s.AddJob(SessionSweepJobName, cronExpr, func() { j.Run() })
}
