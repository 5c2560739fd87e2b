// Package jobs runs the dashboard's background work on cron schedules.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	ErrJobExists   = errors.New("job already registered")
	ErrJobNotFound = errors.New("job not registered")
)

// cronParser accepts five fields, six with a leading seconds field, and
// descriptors such as "@every 5m" or "@daily".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type entry struct {
	id   cron.EntryID
	expr string
}

// Scheduler runs named jobs. Overlapping runs of one job are skipped and
// panics are recovered.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]entry
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	adapter := cronLogger{logger: logger.Named("cron")}
	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithLogger(adapter),
		cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
	)
	return &Scheduler{
		cron:    c,
		logger:  logger,
		entries: make(map[string]entry),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("job scheduler started", zap.Int("jobs", len(s.JobNames())))
	s.cron.Start()
}

// Stop halts scheduling. The returned context is done once running jobs return.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("job scheduler stopping")
	return s.cron.Stop()
}

// AddJob schedules fn under name. An empty expression leaves the job
// switched off and is not an error.
func (s *Scheduler) AddJob(name, expr string, fn func()) error {
	if expr == "" {
		s.logger.Info("job disabled", zap.String("job", name))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("add %s: %w", name, ErrJobExists)
	}

	id, err := s.cron.AddFunc(expr, s.timed(name, fn))
	if err != nil {
		return fmt.Errorf("add %s: invalid schedule %q: %w", name, expr, err)
	}
	s.entries[name] = entry{id: id, expr: expr}

	s.logger.Info("job scheduled", zap.String("job", name), zap.String("schedule", expr))
	return nil
}

func (s *Scheduler) timed(name string, fn func()) func() {
	return func() {
		start := time.Now()
		fn()
		s.logger.Debug("job finished",
			zap.String("job", name),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("remove %s: %w", name, ErrJobNotFound)
	}
	s.cron.Remove(e.id)
	delete(s.entries, name)
	s.logger.Info("job removed", zap.String("job", name))
	return nil
}

// JobNames lists registered jobs alphabetically
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next reports when name runs next. It is zero until the scheduler is started.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(e.id).Next, true
}

type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
